package db

type tableDDL struct {
	name string
	ddl  string
}

type columnDDL struct {
	table      string
	column     string
	definition string
}

var tables = []tableDDL{
	{"users", `
		CREATE TABLE IF NOT EXISTS users (
			id            CHAR(36)     NOT NULL PRIMARY KEY,
			name          VARCHAR(120) NOT NULL,
			email         VARCHAR(190) NOT NULL,
			password_hash VARCHAR(255) NOT NULL,
			created_at    DATETIME(3)  NOT NULL,
			UNIQUE KEY uq_users_email (email)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`},
	{"user_settings", `
		CREATE TABLE IF NOT EXISTS user_settings (
			user_id                 VARCHAR(128)  NOT NULL PRIMARY KEY,
			full_name               VARCHAR(120)  NOT NULL DEFAULT '',
			monthly_goal            DECIMAL(12,2) NOT NULL DEFAULT 2000,
			bolt_commission         DECIMAL(5,2)  NOT NULL DEFAULT 20,
			fuel_cost_per_km        DECIMAL(10,4) NOT NULL DEFAULT 0,
			custom_platforms        TEXT          NULL,
			custom_pickup_locations TEXT          NULL,
			updated_at              DATETIME(3)   NOT NULL
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`},
	{"incomes", `
		CREATE TABLE IF NOT EXISTS incomes (
			id              CHAR(36)      NOT NULL PRIMARY KEY,
			user_id         VARCHAR(128)  NOT NULL,
			platform        VARCHAR(64)   NOT NULL,
			amount          DECIMAL(12,2) NOT NULL,
			distance        DECIMAL(10,2) NULL,
			ride_date       DATETIME(3)   NOT NULL,
			pickup_location VARCHAR(64)   NOT NULL DEFAULT '',
			payment_method  VARCHAR(16)   NOT NULL DEFAULT '',
			salik_fee       DECIMAL(10,2) NOT NULL DEFAULT 0,
			airport_fee     DECIMAL(10,2) NOT NULL DEFAULT 0,
			booking_fee     DECIMAL(10,2) NOT NULL DEFAULT 0,
			commission      DECIMAL(10,2) NOT NULL DEFAULT 0,
			fuel_cost       DECIMAL(10,2) NOT NULL DEFAULT 0,
			created_at      DATETIME(3)   NOT NULL,
			updated_at      DATETIME(3)   NOT NULL,
			KEY idx_incomes_user_date (user_id, ride_date)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`},
}

// Columns added after the first schema; EnsureSchema adds them when missing.
var lateColumns = []columnDDL{
	{"incomes", "paid_to_cashier", "TINYINT(1) NOT NULL DEFAULT 0"},
}
