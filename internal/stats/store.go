package stats

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/pefman/gridfire/internal/combat"
)

// AttackRecord is one resolved attack persisted to the battle log.
type AttackRecord struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	Attacker    string    `json:"attacker"`
	Weapon      string    `json:"weapon"`
	Targets     string    `json:"targets"`
	Hits        int       `json:"hits"`
	TotalDamage int       `json:"total_damage"`
	Kills       int       `json:"kills"`
	CreatedAt   time.Time `json:"created_at"`
}

// Store persists attack records to a SQLite battle log and answers the
// daily leaderboard query.
type Store struct {
	db  *gorm.DB
	log zerolog.Logger
}

// Open connects to the SQLite database at path, or an in-memory database
// when path is empty, and migrates the schema.
func Open(log zerolog.Logger, path string) (*Store, error) {
	dsn := path
	if dsn == "" {
		dsn = "file::memory:?cache=shared"
	}

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		PrepareStmt:            true,
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open battle log: %w", err)
	}

	if err := db.AutoMigrate(&AttackRecord{}); err != nil {
		return nil, fmt.Errorf("failed to migrate battle log: %w", err)
	}

	if path != "" {
		log.Info().Str("path", path).Msg("using battle log on disk")
	} else {
		log.Info().Msg("using in-memory battle log")
	}
	return &Store{db: db, log: log}, nil
}

// RecordAttack writes one resolved attack. No-op results (cooldown, ammo)
// are recorded too; they keep the log an honest action history.
func (s *Store) RecordAttack(res combat.AttackResult) error {
	targets := make([]string, 0, len(res.Records))
	for _, rec := range res.Records {
		targets = append(targets, rec.Target)
	}
	row := AttackRecord{
		Attacker:    res.Attacker,
		Weapon:      res.Weapon,
		Targets:     strings.Join(targets, ","),
		Hits:        res.Hits,
		TotalDamage: res.TotalDamage,
		Kills:       res.Kills,
	}
	if err := s.db.Create(&row).Error; err != nil {
		return fmt.Errorf("failed to record attack: %w", err)
	}
	return nil
}

// BestAttackToday returns the highest-damage attack of the current UTC day,
// hits breaking ties. Returns nil when nothing was recorded today.
func (s *Store) BestAttackToday() (*AttackRecord, error) {
	dayStart := time.Now().UTC().Truncate(24 * time.Hour)

	var row AttackRecord
	err := s.db.
		Where("created_at >= ?", dayStart).
		Order("total_damage DESC, hits DESC").
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query best attack: %w", err)
	}
	return &row, nil
}

// Close releases the underlying connection.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
