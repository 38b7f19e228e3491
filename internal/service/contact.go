package service

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"

	"GalleryStudio/internal/model"
	"GalleryStudio/internal/normalize"
)

// ContactRepo сохраняет сообщения формы обратной связи
type ContactRepo interface {
	CreateMessage(ctx context.Context, msg model.ContactMessage) (*model.ContactMessage, error)
}

// Verifier проверка на спам (captcha)
type Verifier interface {
	Verify(ctx context.Context, token, remoteIP string) (bool, error)
}

// Notifier доставляет уведомление о новом сообщении
type Notifier interface {
	Name() string
	Notify(ctx context.Context, msg model.ContactMessage) error
}

var validate = validator.New()

// ContactRequest тело запроса формы обратной связи
type ContactRequest struct {
	Name         string  `json:"name" validate:"required,max=200"`
	Email        string  `json:"email" validate:"required,max=320"`
	Message      string  `json:"message" validate:"max=10000"`
	ProductID    *string `json:"productId"`
	ProductTitle *string `json:"productTitle"`
	Token        string  `json:"token"`
}

// notifyTimeout ограничивает фоновую доставку одного уведомления
const notifyTimeout = 15 * time.Second

// ContactService принимает сообщения: проверка, сохранение, уведомления в фоне
type ContactService struct {
	repo      ContactRepo
	verifier  Verifier
	notifiers []Notifier
	logger    EventLogger
	wg        sync.WaitGroup
}

// NewContactService создаёт сервис; verifier может быть nil
func NewContactService(r ContactRepo, v Verifier, l EventLogger, notifiers ...Notifier) *ContactService {
	return &ContactService{repo: r, verifier: v, logger: l, notifiers: notifiers}
}

// Submit сохраняет сообщение и запускает уведомления, не дожидаясь их
func (s *ContactService) Submit(ctx context.Context, req ContactRequest, remoteIP string) (*model.ContactMessage, error) {
	req.Name = normalize.Text(req.Name)
	req.Email = normalize.Text(req.Email)
	req.Message = normalize.Text(req.Message)
	if err := validate.Struct(req); err != nil {
		if req.Name == "" || req.Email == "" {
			return nil, invalid("Missing name or email")
		}
		return nil, invalid(err.Error())
	}
	if s.verifier != nil {
		ok, err := s.verifier.Verify(ctx, req.Token, remoteIP)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, ErrNotHuman
		}
	}
	msg, err := s.repo.CreateMessage(ctx, model.ContactMessage{
		Name:         req.Name,
		Email:        req.Email,
		Message:      req.Message,
		ProductID:    normalize.OptionalText(req.ProductID),
		ProductTitle: normalize.OptionalText(req.ProductTitle),
	})
	if err != nil {
		return nil, err
	}
	publish(s.logger, model.EventContactReceived, msg.ID.String(), msg.Email, nil)
	for _, n := range s.notifiers {
		s.wg.Add(1)
		go s.deliver(n, *msg)
	}
	return msg, nil
}

// deliver работает вне контекста запроса, ошибка только логируется
func (s *ContactService) deliver(n Notifier, msg model.ContactMessage) {
	defer s.wg.Done()
	ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
	defer cancel()
	if err := n.Notify(ctx, msg); err != nil {
		log.Printf("%s notification for message %s failed: %v", n.Name(), msg.ID, err)
	}
}

// Wait ждёт завершения отправленных уведомлений
func (s *ContactService) Wait() {
	s.wg.Wait()
}
