package email

import (
	"bytes"
	"fmt"
	"html/template"
	"sync"
)

// Встроенные шаблоны. Хранятся прямо в коде, чтобы деплой не зависел
// от внешней директории с файлами.
var builtinTemplates = map[string]string{
	"welcome": `<html><body>
<h2>Добро пожаловать в Jigz, {{.Username}}!</h2>
<p>Ваш стартовый баланс: {{.Coins}} монет. Баланс обновляется каждый месяц.</p>
<p>Публикуйте задания, откликайтесь и поднимайте отклики ставками монет.</p>
</body></html>`,

	"job_approved": `<html><body>
<h2>Задание одобрено</h2>
<p>Ваше задание «{{.Title}}» прошло модерацию и видно в поиске.</p>
</body></html>`,

	"job_rejected": `<html><body>
<h2>Задание отклонено</h2>
<p>Задание «{{.Title}}» не прошло модерацию.{{if .Reason}} Причина: {{.Reason}}{{end}}</p>
</body></html>`,
}

type templateStore struct {
	mu        sync.RWMutex
	templates map[string]*template.Template
}

func newTemplateStore() *templateStore {
	store := &templateStore{templates: make(map[string]*template.Template)}
	for name, text := range builtinTemplates {
		store.templates[name] = template.Must(template.New(name).Parse(text))
	}
	return store
}

func (s *templateStore) Render(name string, data TemplateData) (string, error) {
	s.mu.RLock()
	tmpl, ok := s.templates[name]
	s.mu.RUnlock()
	if !ok {
		return "", fmt.Errorf("email template %q not found", name)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render template %q: %w", name, err)
	}
	return buf.String(), nil
}
