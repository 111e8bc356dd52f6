package app

import "jigz_backend/internal/email"

// MockEmailProvider используется для тестов и локальной разработки.
type MockEmailProvider struct{}

func (m *MockEmailProvider) Send(msg *email.Email) error { return nil }
func (m *MockEmailProvider) SendTemplate(to []string, subject string, templateName string, data email.TemplateData) error {
	return nil
}
func (m *MockEmailProvider) SendWelcome(to string, username string) error { return nil }
func (m *MockEmailProvider) Validate() error                              { return nil }
func (m *MockEmailProvider) Close() error                                 { return nil }
