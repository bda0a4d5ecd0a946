package storage

import (
	"errors"
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/lixenwraith/cutin-killer/config"
)

// MemoryDSN is the shared in-memory SQLite database
const MemoryDSN = "file::memory:?cache=shared"

// HighScore is the table row for one level's record
type HighScore struct {
	ID            uint   `gorm:"primaryKey"`
	LevelID       string `gorm:"uniqueIndex;size:64;not null"`
	Score         int    `gorm:"not null"`
	DisruptiveHit int
	CompliantHit  int
	Exited        int
	AchievedAt    time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (h HighScore) record() Record {
	return Record{
		LevelID:       h.LevelID,
		Score:         h.Score,
		DisruptiveHit: h.DisruptiveHit,
		CompliantHit:  h.CompliantHit,
		Exited:        h.Exited,
		Achieved:      h.AchievedAt,
	}
}

// GormStore keeps records in SQLite or Postgres
type GormStore struct {
	db *gorm.DB
}

var _ Store = (*GormStore)(nil)

func gormConfig() *gorm.Config {
	return &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	}
}

// OpenSQLite opens path, or the shared in-memory database when path is empty
func OpenSQLite(path string) (*GormStore, error) {
	dsn := path
	if dsn == "" {
		dsn = MemoryDSN
	}
	db, err := gorm.Open(sqlite.Open(dsn), gormConfig())
	if err != nil {
		return nil, fmt.Errorf("open sqlite %q: %w", dsn, err)
	}
	return newGormStore(db)
}

// OpenPostgres connects with the given settings
func OpenPostgres(cfg config.PostgresConfig) (*GormStore, error) {
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true,
	}), gormConfig())
	if err != nil {
		return nil, fmt.Errorf("open postgres %s:%s: %w", cfg.Host, cfg.Port, err)
	}
	return newGormStore(db)
}

func newGormStore(db *gorm.DB) (*GormStore, error) {
	if err := db.AutoMigrate(&HighScore{}); err != nil {
		return nil, fmt.Errorf("migrate high scores: %w", err)
	}
	return &GormStore{db: db}, nil
}

func (s *GormStore) Best(levelID string) (Record, bool, error) {
	if levelID == "" {
		return Record{}, false, ErrInvalidLevel
	}
	var row HighScore
	err := s.db.Where("level_id = ?", levelID).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Record{}, false, nil
	}
	if err != nil {
		return Record{}, false, fmt.Errorf("load high score %s: %w", levelID, err)
	}
	return row.record(), true, nil
}

// Submit compares and stores inside one transaction
func (s *GormStore) Submit(r Record) (bool, error) {
	if r.LevelID == "" {
		return false, ErrInvalidLevel
	}
	if r.Achieved.IsZero() {
		r.Achieved = time.Now()
	}

	stored := false
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var row HighScore
		err := tx.Where("level_id = ?", r.LevelID).Take(&row).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			row = HighScore{LevelID: r.LevelID}
		case err != nil:
			return err
		}

		if r.Score <= row.Score {
			return nil
		}
		row.Score = r.Score
		row.DisruptiveHit = r.DisruptiveHit
		row.CompliantHit = r.CompliantHit
		row.Exited = r.Exited
		row.AchievedAt = r.Achieved
		stored = true
		return tx.Save(&row).Error
	})
	if err != nil {
		return false, fmt.Errorf("submit high score %s: %w", r.LevelID, err)
	}
	return stored, nil
}

func (s *GormStore) All() ([]Record, error) {
	var rows []HighScore
	if err := s.db.Order("level_id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list high scores: %w", err)
	}
	out := make([]Record, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.record())
	}
	return out, nil
}

func (s *GormStore) Clear() error {
	if err := s.db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&HighScore{}).Error; err != nil {
		return fmt.Errorf("clear high scores: %w", err)
	}
	return nil
}

func (s *GormStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Open builds the configured store
// Postgres failures fall back to in-memory SQLite
func Open(cfg config.StorageConfig, log zerolog.Logger) (Store, error) {
	switch cfg.Driver {
	case config.DriverMemory:
		return NewMemoryStore(), nil
	case config.DriverSQLite:
		s, err := OpenSQLite(cfg.SQLite.Path)
		if err != nil {
			return nil, err
		}
		log.Info().Str("path", cfg.SQLite.Path).Msg("using sqlite high scores")
		return s, nil
	case config.DriverPostgres:
		s, err := OpenPostgres(cfg.Postgres)
		if err == nil {
			log.Info().Str("host", cfg.Postgres.Host).Msg("using postgres high scores")
			return s, nil
		}
		log.Error().Err(err).Msg("failed to connect to postgres, trying sqlite")
		return OpenSQLite("")
	default:
		return nil, fmt.Errorf("%w: %q", config.ErrUnknownDriver, cfg.Driver)
	}
}
