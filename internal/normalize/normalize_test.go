package normalize

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestCategory(t *testing.T) {
	cases := map[string]string{
		"UI/UX":                 "uiux",
		" uiux ":                "uiux",
		"Interior Architecture": "interior",
		"exterior":              "exterior",
		"EXTERIOR design":       "exterior",
		"":                      "other",
		"painting":              "other",
		"other":                 "other",
	}
	for in, want := range cases {
		require.Equal(t, want, Category(in), "категория %q", in)
	}
}

func TestTags(t *testing.T) {
	// строка через запятую
	require.Equal(t, []string{"a", "b", "c"}, Tags("a, b ,c"))
	// массив с пустыми элементами
	require.Equal(t, []string{"a", "b"}, Tags([]interface{}{"a", "", "b"}))
	require.Equal(t, []string{"x"}, Tags([]string{" x ", "  "}))
	// отсутствующее значение даёт пустой срез, а не nil
	require.Equal(t, []string{}, Tags(nil))
	require.Equal(t, []string{"3"}, Tags([]interface{}{float64(3), nil}))
}

func TestTagList_UnmarshalJSON(t *testing.T) {
	var req struct {
		Tags TagList `json:"tags"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"tags":"a, b ,c"}`), &req))
	require.Equal(t, TagList{"a", "b", "c"}, req.Tags)

	require.NoError(t, json.Unmarshal([]byte(`{"tags":["a","","b"]}`), &req))
	require.Equal(t, TagList{"a", "b"}, req.Tags)
}

func TestFlexBoolAndInt(t *testing.T) {
	var req struct {
		Featured  FlexBool `json:"featured"`
		SortOrder FlexInt  `json:"sort_order"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"featured":"on","sort_order":"7"}`), &req))
	require.True(t, bool(req.Featured))
	require.Equal(t, 7, int(req.SortOrder))

	require.NoError(t, json.Unmarshal([]byte(`{"featured":0,"sort_order":"abc"}`), &req))
	require.False(t, bool(req.Featured))
	require.Equal(t, 0, int(req.SortOrder))

	require.NoError(t, json.Unmarshal([]byte(`{"featured":true,"sort_order":3}`), &req))
	require.True(t, bool(req.Featured))
	require.Equal(t, 3, int(req.SortOrder))
}

func TestOptionalText(t *testing.T) {
	empty := "   "
	val := " https://example.com "
	require.Nil(t, OptionalText(nil))
	require.Nil(t, OptionalText(&empty))
	require.Equal(t, "https://example.com", *OptionalText(&val))
}

func TestSafeFileName(t *testing.T) {
	require.Equal(t, "my_photo_1_.png", SafeFileName("my photo (1).png", "image.png"))
	require.Equal(t, "image.png", SafeFileName("", "image.png"))
	long := SafeFileName(strings.Repeat("a", 200), "x")
	require.Len(t, long, 80)
}

func TestObjectPath(t *testing.T) {
	now := time.UnixMilli(1700000000123)
	require.Equal(t, "projects/1700000000123-cover.png", ObjectPath(now, "cover.png"))
}

func TestImageExt(t *testing.T) {
	require.Equal(t, "png", ImageExt("image/png"))
	require.Equal(t, "jpg", ImageExt("image/jpeg"))
	require.Equal(t, "webp", ImageExt("image/webp"))
	require.Equal(t, "png", ImageExt("image/gif"))
}

func TestDecodeBase64(t *testing.T) {
	b, err := DecodeBase64("aGVsbG8=")
	require.NoError(t, err)
	require.Equal(t, "hello", string(b))

	b, err = DecodeBase64("data:image/png;base64,aGVsbG8=")
	require.NoError(t, err)
	require.Equal(t, "hello", string(b))

	_, err = DecodeBase64("%%%")
	require.Error(t, err)
}

func TestRepoFullName(t *testing.T) {
	owner, repo, err := RepoFullName("octocat/Hello-World")
	require.NoError(t, err)
	require.Equal(t, "octocat", owner)
	require.Equal(t, "Hello-World", repo)

	owner, repo, err = RepoFullName("https://github.com/octocat/hello.git")
	require.NoError(t, err)
	require.Equal(t, "octocat", owner)
	require.Equal(t, "hello", repo)

	_, _, err = RepoFullName("just-a-name")
	require.ErrorIs(t, err, ErrInvalidRepo)
	_, _, err = RepoFullName("a/b/c")
	require.ErrorIs(t, err, ErrInvalidRepo)
}
