package workspace

import (
	"errors"
	"regexp"
	"strings"
	"unicode/utf8"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"threadline/internal/config"
	"threadline/internal/domain"
	models "threadline/internal/domain/models/workspace"
)

var labelPattern = regexp.MustCompile(`^[^/]+$`)

// labelRules validates a path label: non-blank, bounded, and free of the separator
func labelRules(what string, maxLength int) []validation.Rule {
	return []validation.Rule{
		validation.Required,
		validation.By(notBlank),
		validation.RuneLength(1, maxLength),
		validation.Match(labelPattern).Error(what + " cannot contain slashes"),
	}
}

func notBlank(value interface{}) error {
	s, _ := value.(string)
	if strings.TrimSpace(s) == "" {
		return errors.New("cannot be blank")
	}
	return nil
}

// checkPathLength rejects paths longer than config.MaxPathLength
func checkPathLength(path string) error {
	if utf8.RuneCountInString(path) > config.MaxPathLength {
		return &domain.ValidationError{Message: "path exceeds maximum length"}
	}
	return nil
}

// validationError converts an ozzo validation failure into a domain error
func validationError(err error) error {
	if err == nil {
		return nil
	}
	return &domain.ValidationError{Message: err.Error()}
}

// normalizeID maps an empty string to nil so "" means root
func normalizeID(id *string) *string {
	if id != nil && *id == "" {
		return nil
	}
	return id
}

func validateRole(role string) error {
	return validation.Validate(role, validation.Required, validation.In(models.Roles...))
}

func validateStatus(status string) error {
	return validation.Validate(status, validation.Required, validation.In(models.Statuses...))
}
