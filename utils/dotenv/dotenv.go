package dotenv

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

const (
	DevEnv  = "dev"
	TestEnv = "test"
	ProdEnv = "prod"
)

// Env returns the runtime environment selected by ARENA_ENV, "dev" if unset.
func Env() string {
	env := os.Getenv("ARENA_ENV")
	if env == "" {
		return DevEnv
	}
	return env
}

// LoadDotEnvs loads the .env files following the convention: https://github.com/bkeepers/dotenv#what-other-env-files-can-i-use
// It only need to be called once in main function, other code can use env through os.Getenv('ENV_NAME') during runtime
func LoadDotEnvs() error {
	loadDotEnvs("")
	return nil
}

func loadDotEnvs(rootPath string) {
	env := Env()

	// .env.[runtime_env].local has highest priority, usually contains username and password and other sensitive information
	godotenv.Load(rootPath + ".env." + env + ".local")
	godotenv.Load(rootPath + ".env.local")
	// .env.[runtime_env] usually contains db connection information
	godotenv.Load(rootPath + ".env." + env)
	// .env usually contains shared variables(which might be overwritten by envs above)
	godotenv.Load(rootPath + ".env")
}

// LoadDotEnvsInTests loads .env.test from the module root. Tests run with the
// package directory as cwd, so walk up until go.mod is found.
func LoadDotEnvsInTests() error {
	dir, err := os.Getwd()
	if err != nil {
		return err
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			break
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return nil
		}
		dir = parent
	}

	godotenv.Load(filepath.Join(dir, ".env.test"))
	return nil
}
