package driver

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"
)

type Repo interface {
	Store(ctx context.Context, driver Driver) (int, error)
	Get(ctx context.Context, id int) (Driver, error)
	GetAll(ctx context.Context, includeInactive bool) ([]Driver, error)
	Update(ctx context.Context, driver Driver) (bool, error)
	SetActive(ctx context.Context, id int, active bool) (bool, error)
	Delete(ctx context.Context, id int) (bool, error)
}

type RepoImpl struct {
	db *sql.DB
}

func NewRepo(db *sql.DB) *RepoImpl {
	return &RepoImpl{db: db}
}

const driverColumns = "id, uid, name, employee_id, role, contract, schedule, pay, is_active"

func (r *RepoImpl) Store(ctx context.Context, driver Driver) (int, error) {
	query := `INSERT INTO drivers (uid, name, employee_id, role, contract, schedule, pay, is_active)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	result, err := r.db.ExecContext(ctx, query,
		driver.Uid,
		driver.Name,
		driver.EmployeeID,
		driver.Role,
		driver.Contract,
		driver.Schedule,
		driver.Pay,
		driver.IsActive,
	)
	if err != nil {
		err := fmt.Errorf("could not store driver: %w", err)
		log.Error(err)
		return 0, err
	}
	lastInsertID, err := result.LastInsertId()
	if err != nil {
		err := fmt.Errorf("could not retrieve last insert id: %w", err)
		log.Error(err)
		return 0, err
	}
	return int(lastInsertID), nil
}

func (r *RepoImpl) Get(ctx context.Context, id int) (Driver, error) {
	query := fmt.Sprintf("SELECT %s FROM drivers WHERE id = ?", driverColumns)
	row := r.db.QueryRowContext(ctx, query, id)
	driver, err := scanDriver(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Driver{}, ErrDriverNotFound
	} else if err != nil {
		err := fmt.Errorf("could not get driver %d: %w", id, err)
		log.Error(err)
		return Driver{}, err
	}
	return driver, nil
}

func (r *RepoImpl) GetAll(ctx context.Context, includeInactive bool) ([]Driver, error) {
	query := fmt.Sprintf("SELECT %s FROM drivers", driverColumns)
	if !includeInactive {
		query += " WHERE is_active = 1"
	}
	query += " ORDER BY name"

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		err := fmt.Errorf("could not query drivers: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var drivers []Driver
	for rows.Next() {
		driver, err := scanDriver(rows)
		if err != nil {
			err := fmt.Errorf("could not scan driver: %w", err)
			log.Error(err)
			return nil, err
		}
		drivers = append(drivers, driver)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}
	return drivers, nil
}

func (r *RepoImpl) Update(ctx context.Context, driver Driver) (bool, error) {
	query := `UPDATE drivers SET
				  name = ?,
				  employee_id = ?,
				  role = ?,
				  contract = ?,
				  schedule = ?,
				  pay = ?,
				  is_active = ?
			  WHERE id = ?`
	result, err := r.db.ExecContext(ctx, query,
		driver.Name,
		driver.EmployeeID,
		driver.Role,
		driver.Contract,
		driver.Schedule,
		driver.Pay,
		driver.IsActive,
		driver.ID,
	)
	if err != nil {
		err := fmt.Errorf("could not update driver: %w", err)
		log.Error(err)
		return false, err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		err := fmt.Errorf("could not get rows affected: %w", err)
		log.Error(err)
		return false, err
	}
	return rowsAffected == 1, nil
}

func (r *RepoImpl) SetActive(ctx context.Context, id int, active bool) (bool, error) {
	query := "UPDATE drivers SET is_active = ? WHERE id = ?"
	result, err := r.db.ExecContext(ctx, query, active, id)
	if err != nil {
		err := fmt.Errorf("could not update driver status: %w", err)
		log.Error(err)
		return false, err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		err := fmt.Errorf("could not get rows affected: %w", err)
		log.Error(err)
		return false, err
	}
	return rowsAffected == 1, nil
}

func (r *RepoImpl) Delete(ctx context.Context, id int) (bool, error) {
	query := "DELETE FROM drivers WHERE id = ?"
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		err := fmt.Errorf("could not delete driver: %w", err)
		log.Error(err)
		return false, err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		err := fmt.Errorf("could not get rows affected: %w", err)
		log.Error(err)
		return false, err
	}
	return rowsAffected == 1, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDriver(row rowScanner) (Driver, error) {
	var driver Driver
	var employeeID, role, contract, schedule sql.NullString
	var pay sql.NullFloat64
	err := row.Scan(
		&driver.ID,
		&driver.Uid,
		&driver.Name,
		&employeeID,
		&role,
		&contract,
		&schedule,
		&pay,
		&driver.IsActive,
	)
	if err != nil {
		return Driver{}, err
	}
	driver.EmployeeID = employeeID.String
	driver.Role = role.String
	driver.Contract = contract.String
	driver.Schedule = schedule.String
	driver.Pay = pay.Float64
	return driver, nil
}
