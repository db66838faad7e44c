package database

import (
	"context"
	"strings"

	"github.com/regieops/tpe-manager/internal/common/cnst"
	"gorm.io/gorm"
)

// store is the gorm-backed implementation shared by all drivers
type store struct {
	db *gorm.DB
}

func (s *store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (s *store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (s *store) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ContextWithTransaction(ctx, tx))
	})
}

func (s *store) CreateUser(ctx context.Context, user *User) error {
	return getDBFromContext(ctx, s.db).Create(user).Error
}

func (s *store) GetUser(ctx context.Context, id uint) (*User, error) {
	var user User
	if err := getDBFromContext(ctx, s.db).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *store) GetUserByUsername(ctx context.Context, username string) (*User, error) {
	var user User
	if err := getDBFromContext(ctx, s.db).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *store) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	var user User
	if err := getDBFromContext(ctx, s.db).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *store) ListUsers(ctx context.Context) ([]*User, error) {
	var users []*User
	err := getDBFromContext(ctx, s.db).
		Order("created_at asc, id asc").
		Find(&users).Error
	return users, err
}

func (s *store) CountUsers(ctx context.Context) (int64, error) {
	var count int64
	err := getDBFromContext(ctx, s.db).Model(&User{}).Count(&count).Error
	return count, err
}

func (s *store) UpdateUser(ctx context.Context, user *User) error {
	return getDBFromContext(ctx, s.db).Save(user).Error
}

func (s *store) DeleteUser(ctx context.Context, id uint) error {
	result := getDBFromContext(ctx, s.db).Delete(&User{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (s *store) CreateTPE(ctx context.Context, tpe *TPE) error {
	return getDBFromContext(ctx, s.db).Create(tpe).Error
}

func (s *store) GetTPE(ctx context.Context, id uint) (*TPE, error) {
	var tpe TPE
	if err := getDBFromContext(ctx, s.db).First(&tpe, id).Error; err != nil {
		return nil, err
	}
	return &tpe, nil
}

func (s *store) GetTPEByShopID(ctx context.Context, shopID string) (*TPE, error) {
	var tpe TPE
	if err := getDBFromContext(ctx, s.db).Where("shop_id = ?", shopID).First(&tpe).Error; err != nil {
		return nil, err
	}
	return &tpe, nil
}

// filteredTPEs applies the conjunctive list filters to a query
func filteredTPEs(db *gorm.DB, filter TPEFilter) *gorm.DB {
	query := db.Model(&TPE{})

	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(service_name) LIKE ? OR LOWER(shop_id) LIKE ?", pattern, pattern)
	}
	if filter.TPEModel != "" {
		query = query.Where("tpe_model = ?", filter.TPEModel)
	}
	switch cnst.ConnectionType(filter.ConnectionType) {
	case cnst.ConnectionEthernet:
		query = query.Where("connection_ethernet = ?", true)
	case cnst.ConnectionMobile:
		query = query.Where("connection_4g5g = ?", true)
	}

	return query
}

func (s *store) ListTPEs(ctx context.Context, filter TPEFilter, page, pageSize int) ([]*TPE, int64, error) {
	db := getDBFromContext(ctx, s.db)

	var total int64
	if err := filteredTPEs(db, filter).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var tpes []*TPE
	offset := (page - 1) * pageSize
	err := filteredTPEs(db, filter).
		Order("created_at asc, id asc").
		Offset(offset).
		Limit(pageSize).
		Find(&tpes).Error
	return tpes, total, err
}

func (s *store) ListAllTPEs(ctx context.Context) ([]*TPE, error) {
	var tpes []*TPE
	err := getDBFromContext(ctx, s.db).
		Order("created_at asc, id asc").
		Find(&tpes).Error
	return tpes, err
}

func (s *store) UpdateTPE(ctx context.Context, tpe *TPE) error {
	return getDBFromContext(ctx, s.db).Save(tpe).Error
}

func (s *store) DeleteTPE(ctx context.Context, id uint) error {
	result := getDBFromContext(ctx, s.db).Delete(&TPE{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// GetTPEStats computes all six counts inside one transaction so they
// reflect a single snapshot of the store.
func (s *store) GetTPEStats(ctx context.Context) (*TPEStats, error) {
	stats := &TPEStats{}
	err := s.Transaction(ctx, func(ctx context.Context) error {
		db := getDBFromContext(ctx, s.db)

		counts := []struct {
			dest  *int64
			scope func(*gorm.DB) *gorm.DB
		}{
			{&stats.Total, func(q *gorm.DB) *gorm.DB { return q }},
			{&stats.DeskCount, func(q *gorm.DB) *gorm.DB { return q.Where("tpe_model = ?", string(cnst.TPEModelDesk)) }},
			{&stats.MoveCount, func(q *gorm.DB) *gorm.DB { return q.Where("tpe_model = ?", string(cnst.TPEModelMove)) }},
			{&stats.EthernetCount, func(q *gorm.DB) *gorm.DB { return q.Where("connection_ethernet = ?", true) }},
			{&stats.MobileCount, func(q *gorm.DB) *gorm.DB { return q.Where("connection_4g5g = ?", true) }},
			{&stats.BackofficeActiveCount, func(q *gorm.DB) *gorm.DB { return q.Where("backoffice_active = ?", true) }},
		}

		for _, c := range counts {
			if err := c.scope(db.Model(&TPE{})).Count(c.dest).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return stats, nil
}
