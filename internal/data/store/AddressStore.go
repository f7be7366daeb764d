package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/swippe/quickcommerce/internal/domain/commerceModel"
	"github.com/swippe/quickcommerce/pkg/logger_i"
)

type AddressStore struct {
	db     *sql.DB
	logger *logger_i.Logger
}

func GetAddressStore(db *sql.DB) *AddressStore {
	return &AddressStore{db: db, logger: logger_i.NewLogger("AddressStore")}
}

const addressSelect = `SELECT id, user_id, name, COALESCE(phone, ''), address_line1, COALESCE(address_line2, ''),
	COALESCE(city, ''), COALESCE(state, ''), COALESCE(pincode, ''), COALESCE(landmark, ''),
	COALESCE(latitude, 0), COALESCE(longitude, 0), is_default
	FROM addresses`

func scanAddress(row rowScanner) (commerceModel.Address, error) {
	var a commerceModel.Address
	err := row.Scan(&a.Id, &a.UserId, &a.Name, &a.Phone, &a.Line1, &a.Line2,
		&a.City, &a.State, &a.Pincode, &a.Landmark, &a.Latitude, &a.Longitude, &a.IsDefault)
	return a, err
}

// Create inserts a new address. The user's first address becomes the default
// automatically; an explicit default demotes the previous one.
func (s *AddressStore) Create(ctx context.Context, a commerceModel.Address) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	var existing int64
	if err := tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM addresses WHERE user_id = ?`, a.UserId).Scan(&existing); err != nil {
		return 0, err
	}
	if existing == 0 {
		a.IsDefault = true
	}
	if a.IsDefault {
		if _, err := tx.ExecContext(ctx,
			`UPDATE addresses SET is_default = 0 WHERE user_id = ?`, a.UserId); err != nil {
			return 0, err
		}
	}

	res, err := tx.ExecContext(ctx, `INSERT INTO addresses
		(user_id, name, phone, address_line1, address_line2, city, state, pincode, landmark, latitude, longitude, is_default)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.UserId, a.Name, a.Phone, a.Line1, a.Line2, a.City, a.State, a.Pincode, a.Landmark,
		a.Latitude, a.Longitude, a.IsDefault)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return id, tx.Commit()
}

func (s *AddressStore) ListByUser(ctx context.Context, userId int64) ([]commerceModel.Address, error) {
	rows, err := s.db.QueryContext(ctx,
		addressSelect+` WHERE user_id = ? ORDER BY is_default DESC, created_at DESC`, userId)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var addresses []commerceModel.Address
	for rows.Next() {
		a, err := scanAddress(rows)
		if err != nil {
			return nil, err
		}
		addresses = append(addresses, a)
	}
	return addresses, rows.Err()
}

// GetDefault returns the user's default delivery address, the destination
// shown on the live tracking map.
func (s *AddressStore) GetDefault(ctx context.Context, userId int64) (commerceModel.Address, error) {
	row := s.db.QueryRowContext(ctx, addressSelect+` WHERE user_id = ? AND is_default = 1`, userId)
	a, err := scanAddress(row)
	if errors.Is(err, sql.ErrNoRows) {
		return a, ErrNotFound
	}
	return a, err
}

func (s *AddressStore) GetByIdForUser(ctx context.Context, id int64, userId int64) (commerceModel.Address, error) {
	row := s.db.QueryRowContext(ctx, addressSelect+` WHERE id = ? AND user_id = ?`, id, userId)
	a, err := scanAddress(row)
	if errors.Is(err, sql.ErrNoRows) {
		return a, ErrNotFound
	}
	return a, err
}

func (s *AddressStore) Update(ctx context.Context, a commerceModel.Address) error {
	res, err := s.db.ExecContext(ctx, `UPDATE addresses SET
		name = ?, phone = ?, address_line1 = ?, address_line2 = ?, city = ?, state = ?,
		pincode = ?, landmark = ?, latitude = ?, longitude = ?
		WHERE id = ? AND user_id = ?`,
		a.Name, a.Phone, a.Line1, a.Line2, a.City, a.State, a.Pincode, a.Landmark,
		a.Latitude, a.Longitude, a.Id, a.UserId)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *AddressStore) Delete(ctx context.Context, id int64, userId int64) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM addresses WHERE id = ? AND user_id = ?`, id, userId)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// SetDefault marks one address as default and demotes the rest, atomically.
func (s *AddressStore) SetDefault(ctx context.Context, id int64, userId int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`UPDATE addresses SET is_default = 0 WHERE user_id = ?`, userId); err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx,
		`UPDATE addresses SET is_default = 1 WHERE id = ? AND user_id = ?`, id, userId)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return tx.Commit()
}
