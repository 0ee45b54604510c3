package service

import (
	"fmt"

	"blog-ui/database"
	"blog-ui/database/model"
	"blog-ui/logger"
	"blog-ui/util/crypto"

	"gorm.io/gorm"
)

// AccountService is the account registry: it owns the pending -> active
// lifecycle and admin authentication. The storage handle is injected so
// operations never reach into ambient state.
type AccountService struct {
	db       *gorm.DB
	activity *ActivityLog
	audit    *AdminAuditLog
}

func NewAccountService(db *gorm.DB, activity *ActivityLog, audit *AdminAuditLog) *AccountService {
	return &AccountService{db: db, activity: activity, audit: audit}
}

// Register inserts a pending account with hashed username and password.
// Usernames already held by an active account, or tripping the pending
// table's unique constraint, are rejected as duplicates.
func (s *AccountService) Register(username, password, email string, age int, phoneNumber string) Result {
	var taken int64
	if err := s.db.Model(&model.Account{}).Where("username = ?", username).Count(&taken).Error; err != nil {
		logger.Warning("register: active username lookup failed:", err)
		return fail(err)
	}
	if taken > 0 {
		return fail(ErrDuplicateUsername)
	}

	pending := &model.PendingAccount{
		Username:       username,
		HashedUsername: crypto.Digest(username),
		Password:       crypto.Digest(password),
		Email:          email,
		Age:            age,
		PhoneNumber:    phoneNumber,
	}
	if err := s.db.Create(pending).Error; err != nil {
		if database.IsDuplicate(err) {
			return fail(ErrDuplicateUsername)
		}
		logger.Warning("register: insert pending account failed:", err)
		return fail(err)
	}

	s.activity.Appendf("%s registered", username)
	return ok("Registration request submitted successfully")
}

// Login matches an active account by hashed username AND hashed password
// equality. Accounts still pending approval cannot log in.
func (s *AccountService) Login(username, password string) Result {
	var account model.Account
	err := s.db.
		Where("hashed_username = ? AND password = ?", crypto.Digest(username), crypto.Digest(password)).
		First(&account).Error
	if database.IsNotFound(err) {
		return fail(ErrInvalidCredentials)
	}
	if err != nil {
		logger.Warning("login: account lookup failed:", err)
		return fail(err)
	}

	s.activity.Appendf("%s logged in", username)
	return ok("Login successful")
}

func (s *AccountService) ListPending() ([]model.PendingAccount, error) {
	var pending []model.PendingAccount
	err := s.db.Find(&pending).Error
	return pending, err
}

func (s *AccountService) ListActive() ([]model.Account, error) {
	var active []model.Account
	err := s.db.Find(&active).Error
	return active, err
}

// Approve promotes a pending account to active, preserving its user_id.
// The insert and delete commit as one transaction. A username, email or
// phone collision with an existing active account blocks the promotion
// and leaves the pending row in place.
func (s *AccountService) Approve(actor string, pendingID int) Result {
	action := fmt.Sprintf("Approve User ID %d", pendingID)

	var pending model.PendingAccount
	if err := s.db.Where("user_id = ?", pendingID).First(&pending).Error; err != nil {
		if database.IsNotFound(err) {
			s.audit.Append(actor, action, "Failed - User not found")
			return notFound("User not found")
		}
		logger.Warning("approve: pending lookup failed:", err)
		return fail(err)
	}

	var collisions int64
	err := s.db.Model(&model.Account{}).
		Where("username = ? OR email = ? OR phone_number = ?", pending.Username, pending.Email, pending.PhoneNumber).
		Count(&collisions).Error
	if err != nil {
		logger.Warning("approve: collision lookup failed:", err)
		return fail(err)
	}
	if collisions > 0 {
		s.audit.Append(actor, action, "Failed - User already exists")
		return fail(ErrConflict)
	}

	account := model.Account(pending)
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&account).Error; err != nil {
			return err
		}
		return tx.Where("user_id = ?", pendingID).Delete(&model.PendingAccount{}).Error
	})
	if err != nil {
		logger.Warning("approve: move pending to active failed:", err)
		return fail(err)
	}

	s.audit.Append(actor, action, "Success")
	return ok("User approved successfully")
}

// Deny removes a pending account outright. This is the only true,
// irreversible deletion in the system.
func (s *AccountService) Deny(actor string, pendingID int) Result {
	action := fmt.Sprintf("Deny User ID %d", pendingID)

	res := s.db.Where("user_id = ?", pendingID).Delete(&model.PendingAccount{})
	if res.Error != nil {
		logger.Warning("deny: delete pending account failed:", res.Error)
		s.audit.Append(actor, action, "Failed - "+res.Error.Error())
		return fail(res.Error)
	}
	if res.RowsAffected == 0 {
		s.audit.Append(actor, action, "Failed - User not found")
		return notFound("User not found")
	}

	s.audit.Append(actor, action, "Success")
	return ok("User denied successfully")
}

// Delete demotes an active account back to pending, preserving its
// user_id, as one transaction. Active accounts are never hard-deleted.
func (s *AccountService) Delete(actor string, activeID int) Result {
	action := fmt.Sprintf("Delete User ID %d", activeID)

	var account model.Account
	if err := s.db.Where("user_id = ?", activeID).First(&account).Error; err != nil {
		if database.IsNotFound(err) {
			s.audit.Append(actor, action, "Failed - User not found")
			return notFound("User not found")
		}
		logger.Warning("delete: active lookup failed:", err)
		return fail(err)
	}

	pending := model.PendingAccount(account)
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&pending).Error; err != nil {
			return err
		}
		return tx.Where("user_id = ?", activeID).Delete(&model.Account{}).Error
	})
	if err != nil {
		logger.Warning("delete: move active to pending failed:", err)
		s.audit.Append(actor, action, "Failed - "+err.Error())
		return fail(err)
	}

	s.audit.Append(actor, action, "Success")
	return ok("User deleted successfully")
}

// ResetPassword overwrites an active account's password digest.
func (s *AccountService) ResetPassword(actor, username, newPassword string) Result {
	action := fmt.Sprintf("Reset Password for %s", username)

	err := s.db.Model(&model.Account{}).
		Where("username = ?", username).
		Update("password", crypto.Digest(newPassword)).Error
	if err != nil {
		logger.Warning("reset password failed:", err)
		s.audit.Append(actor, action, "Failed - "+err.Error())
		return fail(err)
	}

	s.audit.Append(actor, action, "Success")
	return ok("Password reset successfully")
}

// AuthenticateAdmin matches an admin by raw username and password digest.
// Every attempt is audited with the username the caller supplied; that is
// the point of the audit trail, failed attempts included.
func (s *AccountService) AuthenticateAdmin(username, password string) (*model.AdminAccount, bool) {
	var admin model.AdminAccount
	err := s.db.
		Where("username = ? AND password = ?", username, crypto.Digest(password)).
		First(&admin).Error
	if err != nil {
		if !database.IsNotFound(err) {
			logger.Warning("admin authentication lookup failed:", err)
		}
		s.audit.Append(username, "Login", "Failed")
		return nil, false
	}

	s.audit.Append(username, "Login", "Success")
	return &admin, true
}
