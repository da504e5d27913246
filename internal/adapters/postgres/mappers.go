package postgres

import "github.com/akararkan/khi-backend-sub000/internal/domain"

func toDomainAccount(m accountModel) domain.Account {
	return domain.Account{
		ID:                  m.ID,
		Username:            m.Username,
		Email:               m.Email,
		PasswordHash:        m.PasswordHash,
		Role:                domain.Role(m.Role),
		Enabled:             m.Enabled,
		FailedAttempts:      m.FailedAttempts,
		Locked:              m.Locked,
		LockedAt:            m.LockedAt,
		PasswordExpiresAt:   m.PasswordExpiresAt,
		ResetToken:          m.ResetToken,
		ResetTokenExpiresAt: m.ResetTokenExpiresAt,
		CreatedAt:           m.CreatedAt,
		UpdatedAt:           m.UpdatedAt,
	}
}

func toDomainSession(m sessionModel) domain.Session {
	return domain.Session{
		SessionID: m.SessionID,
		AccountID: m.AccountID,
		Device:    m.Device,
		IPAddress: m.IPAddress,
		IssuedAt:  m.IssuedAt,
		ExpiresAt: m.ExpiresAt,
		Active:    m.Active,
		LogoutAt:  m.LogoutAt,
	}
}

func toDomainAttempt(m loginAttemptModel) domain.LoginAttempt {
	return domain.LoginAttempt{
		ID:            m.ID,
		AccountID:     m.AccountID,
		AttemptAt:     m.AttemptAt,
		IPAddress:     m.IPAddress,
		Device:        m.Device,
		Status:        domain.AttemptStatus(m.Status),
		FailureReason: m.FailureReason,
	}
}
