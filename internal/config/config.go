package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/m04kA/SalonBookingService/internal/domain"
	"github.com/m04kA/SalonBookingService/pkg/types"
)

// Config конфигурация сервиса, загружается из config.toml.
// Секреты (пароль БД) можно переопределить через окружение / .env.
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Database  DatabaseConfig  `toml:"database"`
	Logs      LogsConfig      `toml:"logs"`
	Metrics   MetricsConfig   `toml:"metrics"`
	Mailer    MailerConfig    `toml:"mailer"`
	Booking   BookingConfig   `toml:"booking"`
	Discounts DiscountsConfig `toml:"discounts"`
}

// ServerConfig настройки HTTP сервера
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`     // секунды
	WriteTimeout    int `toml:"write_timeout"`    // секунды
	IdleTimeout     int `toml:"idle_timeout"`     // секунды
	ShutdownTimeout int `toml:"shutdown_timeout"` // секунды
}

// DatabaseConfig настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
}

// DSN возвращает строку подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig настройки prometheus-метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	ServiceName string `toml:"service_name"`
	Path        string `toml:"path"`
}

// MailerConfig настройки клиента внешнего сервиса уведомлений
type MailerConfig struct {
	Enabled bool   `toml:"enabled"`
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"` // секунды
}

// DayHoursConfig рабочие часы одного дня недели
type DayHoursConfig struct {
	Closed bool   `toml:"closed"`
	Open   string `toml:"open"`  // "HH:MM"
	Close  string `toml:"close"` // "HH:MM"
}

// WeekHoursConfig рабочие часы салона по дням недели
type WeekHoursConfig struct {
	Monday    DayHoursConfig `toml:"monday"`
	Tuesday   DayHoursConfig `toml:"tuesday"`
	Wednesday DayHoursConfig `toml:"wednesday"`
	Thursday  DayHoursConfig `toml:"thursday"`
	Friday    DayHoursConfig `toml:"friday"`
	Saturday  DayHoursConfig `toml:"saturday"`
	Sunday    DayHoursConfig `toml:"sunday"`
}

// BookingConfig настройки движка доступности
type BookingConfig struct {
	SlotGridMinutes int `toml:"slot_grid_minutes"` // шаг сетки слотов
	BufferMinutes   int `toml:"buffer_minutes"`    // запас до начала слота сегодня

	// Деградация при недоступности хранилища: true - читать день
	// как пустой и явно помечать ответ флагом degraded,
	// false (по умолчанию) - возвращать ошибку
	AllowDegradedAvailability bool `toml:"allow_degraded_availability"`

	Hours WeekHoursConfig `toml:"hours"`
}

// DiscountsConfig настройки скидочной программы
type DiscountsConfig struct {
	LoyaltyThreshold   int     `toml:"loyalty_threshold"`
	LoyaltyPercentage  float64 `toml:"loyalty_percentage"`
	BirthdayPercentage float64 `toml:"birthday_percentage"`
	BirthdayWindowDays int     `toml:"birthday_window_days"`
}

// Load читает конфигурацию из toml-файла.
// Перед чтением подхватывает .env (если есть) и накладывает переменные
// окружения поверх секретов из файла.
func Load(path string) (*Config, error) {
	// .env опционален - в проде переменные приходят из окружения
	_ = godotenv.Load()

	cfg := defaultConfig()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: failed to decode %s: %w", path, err)
	}

	if password := os.Getenv("DB_PASSWORD"); password != "" {
		cfg.Database.Password = password
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// WeekSchedule конвертирует часы работы из конфигурации в доменную модель
func (c BookingConfig) WeekSchedule() (domain.WeekSchedule, error) {
	var week domain.WeekSchedule

	days := map[string]struct {
		cfg DayHoursConfig
		dst *domain.DaySchedule
	}{
		"monday":    {c.Hours.Monday, &week.Monday},
		"tuesday":   {c.Hours.Tuesday, &week.Tuesday},
		"wednesday": {c.Hours.Wednesday, &week.Wednesday},
		"thursday":  {c.Hours.Thursday, &week.Thursday},
		"friday":    {c.Hours.Friday, &week.Friday},
		"saturday":  {c.Hours.Saturday, &week.Saturday},
		"sunday":    {c.Hours.Sunday, &week.Sunday},
	}

	for name, day := range days {
		schedule, err := day.cfg.daySchedule()
		if err != nil {
			return domain.WeekSchedule{}, fmt.Errorf("config: booking.hours.%s: %w", name, err)
		}
		*day.dst = schedule
	}

	return week, nil
}

func (d DayHoursConfig) daySchedule() (domain.DaySchedule, error) {
	if d.Closed {
		return domain.DaySchedule{IsOpen: false}, nil
	}

	open, err := types.NewTimeStringFromString(d.Open)
	if err != nil {
		return domain.DaySchedule{}, fmt.Errorf("invalid open time %q: %w", d.Open, err)
	}

	closeTime, err := types.NewTimeStringFromString(d.Close)
	if err != nil {
		return domain.DaySchedule{}, fmt.Errorf("invalid close time %q: %w", d.Close, err)
	}

	if !open.IsBefore(closeTime) {
		return domain.DaySchedule{}, fmt.Errorf("open time %s must be before close time %s", open, closeTime)
	}

	return domain.DaySchedule{IsOpen: true, OpenTime: open, CloseTime: closeTime}, nil
}

func (c *Config) validate() error {
	if c.Server.HTTPPort <= 0 {
		return fmt.Errorf("config: server.http_port must be positive")
	}
	if c.Booking.SlotGridMinutes <= 0 {
		return fmt.Errorf("config: booking.slot_grid_minutes must be positive")
	}
	if c.Booking.BufferMinutes < 0 {
		return fmt.Errorf("config: booking.buffer_minutes must not be negative")
	}
	if c.Discounts.LoyaltyThreshold <= 0 {
		return fmt.Errorf("config: discounts.loyalty_threshold must be positive")
	}
	if _, err := c.Booking.WeekSchedule(); err != nil {
		return err
	}
	return nil
}

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     10,
			WriteTimeout:    10,
			IdleTimeout:     60,
			ShutdownTimeout: 15,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    10,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs: LogsConfig{Level: "info"},
		Booking: BookingConfig{
			SlotGridMinutes: domain.DefaultSlotGridMinutes,
			BufferMinutes:   domain.DefaultBookingBufferMinutes,
		},
		Discounts: DiscountsConfig{
			LoyaltyThreshold:   domain.DefaultLoyaltyThreshold,
			LoyaltyPercentage:  domain.DefaultLoyaltyPercentage,
			BirthdayPercentage: domain.DefaultBirthdayPercentage,
			BirthdayWindowDays: domain.DefaultBirthdayWindowDays,
		},
	}
}
