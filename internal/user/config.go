// Package user 加载并校验每用户的订阅配置（YAML，一人一文件）。
package user

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"stockrss/pkg/stockcode"
)

// 校验规则：user_id 1-32 位字母数字下划线连字符，token 6-32 位字母数字
var (
	userIDRe = regexp.MustCompile(`^[a-zA-Z0-9_-]{1,32}$`)
	tokenRe  = regexp.MustCompile(`^[A-Za-z0-9]{6,32}$`)
)

var (
	ErrInvalidUserID = errors.New("invalid user_id")
	ErrInvalidToken  = errors.New("token must be 6-32 letters or digits")
)

// Config 单个用户的订阅配置。Stocks 在加载时即归一化为规范代码。
type Config struct {
	UserID string   `yaml:"user_id"`
	Token  string   `yaml:"token"`
	Title  string   `yaml:"title"`
	Stocks []string `yaml:"stocks"`
}

// Load 读取并校验单个用户配置。HTML 伪装的文件（内容以 < 开头）直接拒绝。
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read user config: %w", err)
	}
	if len(data) > 0 && data[0] == '<' {
		return nil, fmt.Errorf("user config %s looks like HTML, not YAML", filepath.Base(path))
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse user config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	c.UserID = strings.TrimSpace(c.UserID)
	c.Token = strings.TrimSpace(c.Token)
	c.Title = strings.TrimSpace(c.Title)

	if !userIDRe.MatchString(c.UserID) {
		return fmt.Errorf("%w: %q", ErrInvalidUserID, c.UserID)
	}
	if !tokenRe.MatchString(c.Token) {
		return fmt.Errorf("%w (user %s)", ErrInvalidToken, c.UserID)
	}
	if c.Title == "" {
		c.Title = c.UserID + " 的盯盘"
	}
	normalized := make([]string, 0, len(c.Stocks))
	for _, s := range c.Stocks {
		code, err := stockcode.Normalize(s)
		if err != nil {
			return fmt.Errorf("user %s: %w", c.UserID, err)
		}
		normalized = append(normalized, code)
	}
	c.Stocks = normalized
	return nil
}

// LoadDir 枚举目录下全部 *.yaml，非法配置记日志后跳过，不中断其余用户。
func LoadDir(dir string, logger *zap.Logger) ([]*Config, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil {
		return nil, fmt.Errorf("list user configs: %w", err)
	}
	sort.Strings(paths)

	var users []*Config
	for _, p := range paths {
		cfg, err := Load(p)
		if err != nil {
			logger.Warn("skipping user config",
				zap.String("file", filepath.Base(p)),
				zap.Error(err))
			continue
		}
		users = append(users, cfg)
	}
	return users, nil
}
