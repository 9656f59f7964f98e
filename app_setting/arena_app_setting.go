package app_setting

import (
	"io/ioutil"
	"time"

	"github.com/Luismorlan/logosarena/model"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

const (
	DefaultAdminEmail   = "youmga778@naver.com"
	DefaultRankingLimit = 100
)

// This is the arena setting shared by the api server and the background
// modules. Zero values are replaced by defaults.
type ArenaAppSetting struct {
	// Minimum gap between two arguments of the same user.
	ARGUMENT_COOLDOWN_SECOND float64 `yaml:"ARGUMENT_COOLDOWN_SECOND"`
	// Minimum gap between two comments of the same user.
	COMMENT_COOLDOWN_SECOND float64 `yaml:"COMMENT_COOLDOWN_SECOND"`
	// Minimum gap between two notice comments of the same user.
	NOTICE_COMMENT_COOLDOWN_SECOND float64 `yaml:"NOTICE_COMMENT_COOLDOWN_SECOND"`
	// Minimum gap between two notice likes of the same user.
	NOTICE_LIKE_COOLDOWN_SECOND float64 `yaml:"NOTICE_LIKE_COOLDOWN_SECOND"`
	// Address receiving report notifications.
	ADMIN_EMAIL string `yaml:"ADMIN_EMAIL"`
	// "fixed" for pro/con debates, "label" for per-debate option labels.
	SIDE_MODE string `yaml:"SIDE_MODE"`
	// Number of profiles on the ranking page.
	RANKING_LIMIT int `yaml:"RANKING_LIMIT"`
}

func DefaultArenaAppSetting() ArenaAppSetting {
	return ArenaAppSetting{
		ARGUMENT_COOLDOWN_SECOND:       60,
		COMMENT_COOLDOWN_SECOND:        30,
		NOTICE_COMMENT_COOLDOWN_SECOND: 30,
		NOTICE_LIKE_COOLDOWN_SECOND:    6,
		ADMIN_EMAIL:                    DefaultAdminEmail,
		SIDE_MODE:                      string(model.SideModeFixed),
		RANKING_LIMIT:                  DefaultRankingLimit,
	}
}

// ParseArenaAppSetting reads the yaml at path. An empty path returns the
// defaults.
func ParseArenaAppSetting(path string) (ArenaAppSetting, error) {
	s := ArenaAppSetting{}
	if path != "" {
		yamlFile, err := ioutil.ReadFile(path)
		if err != nil {
			return s, errors.Wrap(err, "read app setting")
		}
		if err = yaml.Unmarshal(yamlFile, &s); err != nil {
			return s, errors.Wrap(err, "unmarshal app setting")
		}
	}
	s.fillDefaults()
	if _, err := model.ParseSideMode(s.SIDE_MODE); err != nil {
		return s, err
	}
	return s, nil
}

func (s *ArenaAppSetting) fillDefaults() {
	d := DefaultArenaAppSetting()
	if s.ARGUMENT_COOLDOWN_SECOND <= 0 {
		s.ARGUMENT_COOLDOWN_SECOND = d.ARGUMENT_COOLDOWN_SECOND
	}
	if s.COMMENT_COOLDOWN_SECOND <= 0 {
		s.COMMENT_COOLDOWN_SECOND = d.COMMENT_COOLDOWN_SECOND
	}
	if s.NOTICE_COMMENT_COOLDOWN_SECOND <= 0 {
		s.NOTICE_COMMENT_COOLDOWN_SECOND = d.NOTICE_COMMENT_COOLDOWN_SECOND
	}
	if s.NOTICE_LIKE_COOLDOWN_SECOND <= 0 {
		s.NOTICE_LIKE_COOLDOWN_SECOND = d.NOTICE_LIKE_COOLDOWN_SECOND
	}
	if s.ADMIN_EMAIL == "" {
		s.ADMIN_EMAIL = d.ADMIN_EMAIL
	}
	if s.SIDE_MODE == "" {
		s.SIDE_MODE = d.SIDE_MODE
	}
	if s.RANKING_LIMIT <= 0 {
		s.RANKING_LIMIT = d.RANKING_LIMIT
	}
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

// CooldownWindow returns the window for a cooldown table, 0 for tables that
// are not throttled.
func (s ArenaAppSetting) CooldownWindow(table model.Table) time.Duration {
	switch table {
	case model.TableArguments:
		return seconds(s.ARGUMENT_COOLDOWN_SECOND)
	case model.TableComments:
		return seconds(s.COMMENT_COOLDOWN_SECOND)
	case model.TableNoticeComments:
		return seconds(s.NOTICE_COMMENT_COOLDOWN_SECOND)
	case model.TableNoticeLikes:
		return seconds(s.NOTICE_LIKE_COOLDOWN_SECOND)
	}
	return 0
}

func (s ArenaAppSetting) SideMode() model.SideMode {
	m, err := model.ParseSideMode(s.SIDE_MODE)
	if err != nil {
		return model.SideModeFixed
	}
	return m
}
