package mappers

import (
	"boxmas/internal/domain/user"
	"boxmas/internal/infrastructure/persistence/models"
)

// SessionMapper handles the conversion between Session domain entities and persistence models.
type SessionMapper interface {
	// ToModel converts a domain entity to a persistence model.
	ToModel(entity *user.Session) *models.SessionModel

	// ToDomain converts a persistence model to a domain entity.
	ToDomain(model *models.SessionModel) *user.Session
}

// SessionMapperImpl is the concrete implementation of SessionMapper.
type SessionMapperImpl struct{}

// NewSessionMapper creates a new SessionMapper.
func NewSessionMapper() SessionMapper {
	return &SessionMapperImpl{}
}

// ToModel converts a domain entity to a persistence model. Times are stored in UTC.
func (m *SessionMapperImpl) ToModel(entity *user.Session) *models.SessionModel {
	if entity == nil {
		return nil
	}
	return &models.SessionModel{
		ID:         entity.ID,
		UserID:     entity.UserID,
		Token:      entity.Token,
		DeviceInfo: entity.DeviceInfo,
		IPAddress:  entity.IPAddress,
		ExpiresAt:  entity.ExpiresAt.UTC(),
		LastUsedAt: entity.LastUsedAt.UTC(),
		CreatedAt:  entity.CreatedAt.UTC(),
	}
}

// ToDomain converts a persistence model to a domain entity.
func (m *SessionMapperImpl) ToDomain(model *models.SessionModel) *user.Session {
	if model == nil {
		return nil
	}
	return &user.Session{
		ID:         model.ID,
		UserID:     model.UserID,
		Token:      model.Token,
		DeviceInfo: model.DeviceInfo,
		IPAddress:  model.IPAddress,
		ExpiresAt:  model.ExpiresAt,
		LastUsedAt: model.LastUsedAt,
		CreatedAt:  model.CreatedAt,
	}
}
