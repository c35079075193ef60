package db

import (
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/navalha-app/navalha-api/internal/config"
	"github.com/navalha-app/navalha-api/internal/models"
)

func NewDB(cfg *config.Config, log *zap.Logger) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
	})
	if err != nil {
		log.Fatal("failed to connect database", zap.Error(err))
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatal("failed to get sql.DB", zap.Error(err))
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := db.AutoMigrate(
		&models.Barbershop{},
		&models.User{},
		&models.Service{},
		&models.BusinessHours{},
		&models.WorkSchedule{},
		&models.TimeBlock{},
		&models.Client{},
		&models.Appointment{},
		&models.Notification{},
		&models.AuditLog{},
	); err != nil {
		log.Fatal("failed to migrate", zap.Error(err))
	}

	db.Exec(`
        UPDATE barbershops
        SET timezone = 'America/Sao_Paulo'
        WHERE timezone IS NULL OR timezone = ''
    `)

	// Rede de segurança no banco para a corrida de reserva: dois
	// agendamentos vivos do mesmo barbeiro nunca se sobrepõem, mesmo
	// que duas transações passem pela checagem de conflito.
	db.Exec(`CREATE EXTENSION IF NOT EXISTS btree_gist`)
	db.Exec(`
        ALTER TABLE appointments
        ADD CONSTRAINT appointments_no_overlap
        EXCLUDE USING gist (
            barber_id WITH =,
            tsrange(
                scheduled_at,
                scheduled_at + (duration_min * interval '1 minute')
            ) WITH &&
        )
        WHERE (status NOT IN ('cancelled', 'no_show'))
    `)

	return db
}
