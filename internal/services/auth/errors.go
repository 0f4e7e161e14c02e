package auth

import "errors"

var (
	// ErrValidation обязательные поля не заполнены или некорректны.
	ErrValidation = errors.New("validation failed")
	// ErrUserExists username или email уже заняты.
	ErrUserExists = errors.New("user exists")
	// ErrInvalidCredentials неверное имя пользователя или пароль.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidToken токен не прошел проверку, истек, отозван или уже использован.
	ErrInvalidToken = errors.New("invalid or expired token")
	// ErrUserNotFound пользователь не найден.
	ErrUserNotFound = errors.New("user not found")
	// ErrEmailDelivery письмо не удалось отправить.
	ErrEmailDelivery = errors.New("failed to send email")
)

// ValidationError ошибка валидации с сообщением для клиента.
// errors.Is(err, ErrValidation) для нее истинно.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func validation(msg string) error {
	return &ValidationError{Message: msg}
}
