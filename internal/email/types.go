package email

// Email - простое письмо.
type Email struct {
	To      []string
	Subject string
	Body    string
	IsHTML  bool
}

// TemplateData - данные для подстановки в шаблон.
type TemplateData map[string]interface{}
