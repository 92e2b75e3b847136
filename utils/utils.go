package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/gin-gonic/gin"
)

const articleExt = ".html"

var articleFilenameRegex = regexp.MustCompile(`^[a-z_0-9]*$`)

// ValidArticleFilename reports whether name may be used as an article key in
// a URL. Only lowercase letters, digits and underscores are allowed, which
// also keeps the name from escaping the article directory.
func ValidArticleFilename(name string) bool {
	return articleFilenameRegex.MatchString(name)
}

func ArticlePath(dir, filename string) string {
	return filepath.Join(dir, filename+articleExt)
}

// ReadArticleBody returns the raw HTML body stored for filename.
func ReadArticleBody(dir, filename string) (string, error) {
	data, err := os.ReadFile(ArticlePath(dir, filename))
	if err != nil {
		return "", fmt.Errorf("reading article %q: %w", filename, err)
	}
	return string(data), nil
}

// PostFormPtr returns the urlencoded or multipart form value for key exactly
// as sent, or nil when the field is absent.
func PostFormPtr(c *gin.Context, key string) *string {
	value, ok := c.GetPostForm(key)
	if !ok {
		return nil
	}
	return &value
}
