package signature

import (
	"context"

	"github.com/pkg/errors"
	"github.com/viant/afs"
	"gopkg.in/yaml.v3"
)

// Config holds the five signature tables the detectors match against. The
// tables are configuration, not code: adding a newly recognized API means
// extending a table, never touching detector logic.
type Config struct {
	BalanceRead      Table `yaml:"balanceRead"`      // Calls loading a user's recorded balance
	ValueTransfer    Table `yaml:"valueTransfer"`    // Calls moving native tokens out of the contract
	RandomnessSource Table `yaml:"randomnessSource"` // Randomness APIs unsafe on-chain
	ClockSource      Table `yaml:"clockSource"`      // On-chain clock APIs attackers can skew
	RoundingFunction Table `yaml:"roundingFunction"` // Float rounding, a precision-loss proxy
}

// Default returns the built-in tables covering the Solana runtime APIs the
// sample contract corpus exercises.
func Default() *Config {
	return &Config{
		BalanceRead: Table{
			"std::collections::HashMap::get_mut",
			"solana_program::account_info::AccountInfo::lamports",
		},
		ValueTransfer: Table{
			"solana_program::account_info::AccountInfo::try_borrow_mut_lamports",
			"solana_program::program::invoke",
		},
		RandomnessSource: Table{
			"rand::Rng::gen",
			"rand::thread_rng",
		},
		ClockSource: Table{
			"solana_program::sysvar::clock::Clock::get",
			"solana_program::clock::Clock::unix_timestamp",
		},
		RoundingFunction: Table{
			"f64::round",
			"f32::round",
		},
	}
}

// Load reads a yaml signature config from URL.
func Load(ctx context.Context, URL string) (*Config, error) {
	fs := afs.New()
	data, err := fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load signature config: %v", URL)
	}
	config := &Config{}
	if err = yaml.Unmarshal(data, config); err != nil {
		return nil, errors.Wrapf(err, "invalid signature config: %v", URL)
	}
	return config, nil
}
