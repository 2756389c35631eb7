package repos

import (
	"github.com/jmoiron/sqlx"

	"fastenhub/internal/domain"
)

// SettingsRepo persists local configuration that survives restarts but is
// never pushed to the remote store: the business contact record.
type SettingsRepo struct{ db *sqlx.DB }

func NewSettingsRepo(db *sqlx.DB) *SettingsRepo { return &SettingsRepo{db: db} }

func (r *SettingsRepo) Contact() (domain.ContactInfo, error) {
	var c domain.ContactInfo
	err := r.db.Get(&c, `SELECT phone,whatsapp,email,address FROM contact_info WHERE id=1`)
	return c, err
}

func (r *SettingsRepo) SaveContact(c domain.ContactInfo) error {
	_, err := r.db.Exec(`
		UPDATE contact_info
		SET phone=?, whatsapp=?, email=?, address=?, updated_at=CURRENT_TIMESTAMP
		WHERE id=1
	`, c.Phone, c.WhatsApp, c.Email, c.Address)
	return err
}
