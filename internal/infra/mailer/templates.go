package mailer

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"technews/internal/domain/entity"
)

var articleTemplate = template.Must(template.New("article").Parse(`<html>
<body style="font-family: sans-serif; max-width: 600px; margin: 0 auto;">
  <h2>{{.Title}}</h2>
  <p>{{.Excerpt}}</p>
  <p><a href="{{.ReadMoreURL}}">Read the full article</a></p>
  <hr>
  <p style="font-size: 12px; color: #888;">
    You are receiving this because you subscribed to our newsletter.
    <a href="{{.UnsubscribeURL}}">Unsubscribe</a>
  </p>
</body>
</html>`))

var welcomeTemplate = template.Must(template.New("welcome").Parse(`<html>
<body style="font-family: sans-serif; max-width: 600px; margin: 0 auto;">
  <h2>Welcome, {{.Name}}!</h2>
  <p>Your {{.Role}} account has been created. You can sign in at
  <a href="{{.LoginURL}}">{{.LoginURL}}</a>.</p>
</body>
</html>`))

var resetTemplate = template.Must(template.New("reset").Parse(`<html>
<body style="font-family: sans-serif; max-width: 600px; margin: 0 auto;">
  <h2>Password reset</h2>
  <p>Hello {{.Name}},</p>
  <p>A password reset was requested for your account. The link below is
  valid for one hour:</p>
  <p><a href="{{.ResetURL}}">Reset your password</a></p>
  <p>If you did not request this, you can ignore this email.</p>
</body>
</html>`))

const maxExcerptLength = 300

// articleSubject builds the notification subject line.
func articleSubject(article *entity.Article) string {
	return fmt.Sprintf("New Article: %s", article.Title)
}

// renderArticle renders the new-article notification body. When the
// article has no excerpt, a truncated slice of the content stands in.
func renderArticle(article *entity.Article, frontendURL string) (string, error) {
	excerpt := article.Excerpt
	if excerpt == "" {
		excerpt = truncate(article.Content, maxExcerptLength)
	}

	var buf bytes.Buffer
	err := articleTemplate.Execute(&buf, struct {
		Title          string
		Excerpt        string
		ReadMoreURL    string
		UnsubscribeURL string
	}{
		Title:          article.Title,
		Excerpt:        excerpt,
		ReadMoreURL:    fmt.Sprintf("%s/article/%d", frontendURL, article.ID),
		UnsubscribeURL: frontendURL + "/unsubscribe",
	})
	if err != nil {
		return "", fmt.Errorf("render article email: %w", err)
	}
	return buf.String(), nil
}

func renderWelcome(user *entity.User, frontendURL string) (string, error) {
	var buf bytes.Buffer
	err := welcomeTemplate.Execute(&buf, struct {
		Name     string
		Role     string
		LoginURL string
	}{
		Name:     user.Name,
		Role:     user.Role,
		LoginURL: frontendURL + "/login",
	})
	if err != nil {
		return "", fmt.Errorf("render welcome email: %w", err)
	}
	return buf.String(), nil
}

func renderReset(user *entity.User, token, frontendURL string) (string, error) {
	var buf bytes.Buffer
	err := resetTemplate.Execute(&buf, struct {
		Name     string
		ResetURL string
	}{
		Name:     user.Name,
		ResetURL: fmt.Sprintf("%s/reset-password?token=%s", frontendURL, token),
	})
	if err != nil {
		return "", fmt.Errorf("render reset email: %w", err)
	}
	return buf.String(), nil
}

func truncate(s string, limit int) string {
	runes := []rune(strings.TrimSpace(s))
	if len(runes) <= limit {
		return string(runes)
	}
	return string(runes[:limit]) + "..."
}
