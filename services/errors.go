package services

import "errors"

// Общие ошибки, используемые в разных сервисах и маппинге HTTP.
var (
	// Ресурс не найден (универсальная)
	ErrNotFound = errors.New("requested resource not found")

	// Ошибки валидации и бизнес-правил
	ErrValidationFailed     = errors.New("validation failed")
	ErrPasswordTooShort     = errors.New("password is too short")
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrFullNameRequired     = errors.New("full name is required")
	ErrInvalidRole          = errors.New("invalid role")
	ErrUnknownOpportunity   = errors.New("unknown opportunity type")
	ErrTitleRequired        = errors.New("opportunity title is required")
	ErrEventDateRequired    = errors.New("event date is required")
	ErrEventLocationNeeded  = errors.New("event city and state are required")
	ErrAmountNotPositive    = errors.New("amount must be a positive number")
	ErrCoverageTypeRequired = errors.New("travel support coverage type is required")
	ErrAmountRangeInverted  = errors.New("travel support max amount must not be below min amount")
	ErrEmptyMediaBatch      = errors.New("media batch must contain at least one file")
	ErrInvalidMediaKind     = errors.New("invalid media kind")

	// Ошибки конфликтов
	ErrUserEmailConflict   = errors.New("email address is already in use")
	ErrApplicationConflict = errors.New("athlete has already applied to this opportunity")

	// Ошибки жизненного цикла заявки
	ErrInvalidDecision            = errors.New("decision must be accepted or rejected")
	ErrApplicationAlreadyDecided  = errors.New("application has already been decided")
	ErrApplicationReviewForbidden = errors.New("application belongs to another organization")

	// Ошибки аутентификации и авторизации
	ErrAuthenticationFailed = errors.New("authentication failed")
	ErrForbiddenOperation   = errors.New("operation not allowed for the current user")

	// Ошибки, специфичные для сущностей (дают больше контекста, чем ErrNotFound)
	ErrUserNotFound        = errors.New("user not found")
	ErrAthleteNotFound     = errors.New("athlete not found")
	ErrOpportunityNotFound = errors.New("opportunity not found")
	ErrApplicationNotFound = errors.New("application not found")
	ErrDonationNotFound    = errors.New("donation not found")
	ErrProfileNotFound     = errors.New("athlete profile not found")
	ErrMediaNotFound       = errors.New("media asset not found")

	// Отказ внешнего коллаборатора (хранилище, платёжный шлюз, SMTP).
	// Не ретраится автоматически — решение о повторе за вызывающим.
	ErrUpstreamFailure = errors.New("upstream collaborator failure")
)
