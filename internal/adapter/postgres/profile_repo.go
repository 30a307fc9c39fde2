package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"wellness/internal/domain"
)

// GetProfile returns the user's metabolic profile, or nil.
func (d *DB) GetProfile(ctx context.Context, userID int64) (*domain.MetabolicProfile, error) {
	var (
		sex, activity     sql.NullString
		birth             sql.NullString
		height, weightLbs sql.NullFloat64
	)
	err := d.sql.QueryRowContext(ctx,
		"SELECT sex, to_char(birth_date, 'YYYY-MM-DD'), height_cm, weight_lbs, activity_level FROM metabolic_profiles WHERE user_id = $1;",
		userID,
	).Scan(&sex, &birth, &height, &weightLbs, &activity)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	p := &domain.MetabolicProfile{
		UserID:    userID,
		HeightCM:  nullFloat(height),
		WeightLbs: nullFloat(weightLbs),
	}
	if sex.Valid {
		p.Sex = &sex.String
	}
	if activity.Valid {
		p.ActivityLevel = &activity.String
	}
	if birth.Valid {
		bd, err := time.Parse(dayLayout, birth.String)
		if err != nil {
			return nil, err
		}
		p.BirthDate = &bd
	}
	return p, nil
}

// UpsertProfile replaces the user's metabolic profile.
func (d *DB) UpsertProfile(ctx context.Context, p domain.MetabolicProfile) error {
	var birth sql.NullString
	if p.BirthDate != nil {
		birth = sql.NullString{String: p.BirthDate.Format(dayLayout), Valid: true}
	}
	_, err := d.sql.ExecContext(ctx,
		"INSERT INTO metabolic_profiles(user_id, sex, birth_date, height_cm, weight_lbs, activity_level) VALUES($1, $2, $3::date, $4, $5, $6) "+
			"ON CONFLICT (user_id) DO UPDATE SET sex = EXCLUDED.sex, birth_date = EXCLUDED.birth_date, height_cm = EXCLUDED.height_cm, "+
			"weight_lbs = EXCLUDED.weight_lbs, activity_level = EXCLUDED.activity_level;",
		p.UserID, toNullString(p.Sex), birth, toNullFloat(p.HeightCM), toNullFloat(p.WeightLbs), toNullString(p.ActivityLevel),
	)
	return err
}

func toNullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
