package apperrors

import (
	"net/http"
)

/*
Этот файл содержит фабрики и предопределенные переменные
для общих ошибок бизнес-логики и домена.
*/

// CoinShortage - детали ошибки нехватки монет.
// UI показывает пользователю, сколько нужно и сколько есть,
// поэтому поля отдаются клиенту дословно.
type CoinShortage struct {
	CoinsNeeded    int `json:"coinsNeeded"`
	CoinsAvailable int `json:"coinsAvailable"`
}

// =========================================================================
// Фабричные ФУНКЦИИ (Используются для оборачивания ошибок, напр. из репозитория)
// =========================================================================

// ErrNotFound - фабрика для ошибки "не найдено" (404)
func ErrNotFound(err error) *AppError {
	return Wrap(err, CodeNotFound, "resource", "Resource not found", http.StatusNotFound)
}

// ErrAlreadyExists - фабрика для ошибки "уже существует" (409)
func ErrAlreadyExists(err error) *AppError {
	return Wrap(err, CodeAlreadyExists, "resource", "Resource already exists", http.StatusConflict)
}

// ErrConflict - общая фабрика для конфликтов (409)
func ErrConflict(err error, domain, message string) *AppError {
	return Wrap(err, CodeConflict, domain, message, http.StatusConflict)
}

// ErrInvalidOperation - фабрика для невалидных операций (400)
func ErrInvalidOperation(domain, message string) *AppError {
	return New(CodeInvalidOperation, domain, message, http.StatusBadRequest)
}

// ErrInvalidStatus - фабрика для невалидных статусов (400)
func ErrInvalidStatus(domain, message string) *AppError {
	return New(CodeInvalidStatus, domain, message, http.StatusBadRequest)
}

// ErrInsufficientCoins - фабрика для нехватки монет (402).
// needed - полная стоимость действия, available - текущий баланс.
func ErrInsufficientCoins(needed, available int) *AppError {
	return New(
		CodeInsufficientCoins,
		"coins",
		"Not enough coins for this action",
		http.StatusPaymentRequired,
	).WithDetails(CoinShortage{CoinsNeeded: needed, CoinsAvailable: available})
}

// =========================================================================
// Предопределенные ПЕРЕМЕННЫЕ (Для частых, статичных ошибок)
// =========================================================================

// ErrInsufficientPermissions - используется, когда не-админ пытается выполнить админ-действие.
var ErrInsufficientPermissions = New(
	CodeForbidden,
	"auth",
	"Insufficient permissions",
	http.StatusForbidden,
)

// ErrAlreadyApplied - повторный отклик на ту же вакансию.
// Отдельный код, чтобы UI мог показать состояние "вы уже откликнулись",
// а не общую ошибку валидации.
var ErrAlreadyApplied = New(
	CodeAlreadyApplied,
	"application",
	"You have already applied to this job",
	http.StatusConflict,
)

// ErrJobNotOpen - операция невозможна в текущем статусе вакансии.
var ErrJobNotOpen = New(
	CodeInvalidStatus,
	"job",
	"Operation not allowed for the current job status",
	http.StatusConflict,
)

// ErrJobNotApproved - вакансия еще не прошла модерацию.
var ErrJobNotApproved = New(
	CodeInvalidStatus,
	"job",
	"Job has not been approved by moderation",
	http.StatusConflict,
)

// ErrJobExpired - срок публикации вакансии истек.
var ErrJobExpired = New(
	CodeInvalidStatus,
	"job",
	"Job posting has expired",
	http.StatusConflict,
)

// ErrReviewAlreadyLeft - отзыв по этой паре (вакансия, автор) уже существует.
var ErrReviewAlreadyLeft = New(
	CodeAlreadyExists,
	"review",
	"Review for this job has already been submitted",
	http.StatusConflict,
)

// ErrJobNotCompleted - отзыв можно оставить только после завершения работы.
var ErrJobNotCompleted = New(
	CodeInvalidStatus,
	"review",
	"Reviews can be left only after the job is completed",
	http.StatusConflict,
)

// --- Auth & User Status ---

// ErrWeakPassword - пароль слишком слабый.
var ErrWeakPassword = New(
	CodeValidationFailed,
	"validation",
	"Password is too weak. Minimum 8 characters required.",
	http.StatusBadRequest,
)

// ErrEmailAlreadyExists - email уже используется.
var ErrEmailAlreadyExists = New(
	CodeAlreadyExists,
	"auth",
	"Email already in use",
	http.StatusConflict,
)

// ErrUsernameAlreadyExists - имя пользователя уже занято.
var ErrUsernameAlreadyExists = New(
	CodeAlreadyExists,
	"auth",
	"Username already in use",
	http.StatusConflict,
)

// ErrInvalidCredentials - неверный email или пароль.
var ErrInvalidCredentials = New(
	CodeInvalidCredentials,
	"auth",
	"Invalid email or password",
	http.StatusUnauthorized,
)

// ErrInvalidToken - неверный или просроченный токен (refresh, verify, reset).
var ErrInvalidToken = New(
	CodeInvalidToken,
	"auth",
	"Invalid or expired token",
	http.StatusUnauthorized,
)

// ErrUserSuspended - аккаунт временно заблокирован.
var ErrUserSuspended = New(
	CodeForbidden,
	"auth",
	"Your account has been suspended",
	http.StatusForbidden,
)
