package repos

import (
	"github.com/jmoiron/sqlx"

	"fastenhub/internal/domain"
)

type AdminRepo struct{ DB *sqlx.DB }

func NewAdminRepo(db *sqlx.DB) *AdminRepo { return &AdminRepo{DB: db} }

func (r *AdminRepo) ByUsername(username string) (*domain.Admin, error) {
	var a domain.Admin
	err := r.DB.Get(&a, `SELECT id,username,password_hash FROM admins WHERE LOWER(username)=LOWER(?)`, username)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AdminRepo) BindSession(sid, adminID string) error {
	_, err := r.DB.Exec(`INSERT INTO sessions(id,admin_id,last_seen)
                          VALUES(?,?,CURRENT_TIMESTAMP)
                          ON CONFLICT(id) DO UPDATE SET admin_id=excluded.admin_id,last_seen=CURRENT_TIMESTAMP`, sid, adminID)
	return err
}

func (r *AdminRepo) SessionAdmin(sid string) (*domain.Admin, error) {
	var a domain.Admin
	err := r.DB.Get(&a, `
      SELECT a.id,a.username,a.password_hash
      FROM sessions s
      JOIN admins a ON a.id=s.admin_id
      WHERE s.id=?`, sid)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AdminRepo) UnbindSession(sid string) error {
	_, err := r.DB.Exec(`UPDATE sessions SET admin_id=NULL,last_seen=CURRENT_TIMESTAMP WHERE id=?`, sid)
	return err
}
