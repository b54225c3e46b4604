package config

import (
	"time"

	"github.com/caarlos0/env/v9"
)

type Config struct {
	Port                   string `env:"PORT" envDefault:"8080"`
	DBUser                 string `env:"DB_USER,required"`
	DBPassword             string `env:"DB_PASSWORD,required"`
	DBHost                 string `env:"DB_HOST,required"` // e.g. tcp(host:3306) or unix(/cloudsql/instance)
	DBName                 string `env:"DB_NAME,required"`
	DBPort                 string `env:"DB_PORT" envDefault:"3306"`
	InstanceConnectionName string `env:"INSTANCE_CONNECTION_NAME"`

	// Points awarded per approved submission kind. Policy, not logic: the
	// moderation engine applies whatever these say.
	AwardSpawnLocation int64 `env:"AWARD_SPAWN_LOCATION" envDefault:"20"`
	AwardProductImage  int64 `env:"AWARD_PRODUCT_IMAGE" envDefault:"0"`
	AwardProductReview int64 `env:"AWARD_PRODUCT_REVIEW" envDefault:"0"`

	// Upper bound on waiting for a contended row before the caller gets a
	// busy error instead of blocking.
	LockWaitTimeout time.Duration `env:"LOCK_WAIT_TIMEOUT" envDefault:"3s"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
