// internal/service/config.go
package service

import (
	"log"

	"github.com/spf13/viper"
)

// FeedConfig 定义频道级默认项
type FeedConfig struct {
	SiteLink    string
	Description string
	TTLMinutes  int
}

// ProviderConfig 定义外部行情源地址与重试参数
type ProviderConfig struct {
	QuoteURL        string
	FundFlowURL     string
	NorthboundURL   string
	TushareURL      string
	TushareTokenEnv string // tushare token 的环境变量名
	TimeoutSec      int
	MaxRetries      int
	RetryDelayMS    int
}

type Config struct {
	Feed      FeedConfig     `mapstructure:"Feed"`
	Provider  ProviderConfig `mapstructure:"Provider"`
	UsersDir  string         `mapstructure:"UsersDir"`
	OutputDir string         `mapstructure:"OutputDir"`
}

// GlobalConfig 存储加载后的全局配置
var GlobalConfig Config

// LoadConfig 读取并解析配置文件，缺省项走 setDefaults
func LoadConfig(configPath string) *Config {
	setDefaults()

	// 设置配置文件的名称、类型和路径
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configPath)

	// 查找并读取配置文件
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Fatalf("Config file not found: %s", err)
		} else {
			log.Fatalf("Error reading config file: %s", err)
		}
	}

	// 将配置绑定到结构体
	if err := viper.Unmarshal(&GlobalConfig); err != nil {
		log.Fatalf("Unable to decode config into struct: %s", err)
	}

	return &GlobalConfig
}

func setDefaults() {
	viper.SetDefault("Feed.SiteLink", "https://stockrss.cuixiaoyuan.cn")
	viper.SetDefault("Feed.Description", "北向资金 / 主力-大中小单净流入 / 实时涨跌 订阅")
	viper.SetDefault("Feed.TTLMinutes", 5)
	viper.SetDefault("Provider.QuoteURL", "https://push2.eastmoney.com/api/qt/ulist.np/get")
	viper.SetDefault("Provider.FundFlowURL", "https://push2.eastmoney.com/api/qt/ulist.np/get")
	viper.SetDefault("Provider.NorthboundURL", "https://push2.eastmoney.com/api/qt/kamt/get")
	viper.SetDefault("Provider.TushareURL", "https://api.tushare.pro")
	viper.SetDefault("Provider.TushareTokenEnv", "TUSHARE_TOKEN")
	viper.SetDefault("Provider.TimeoutSec", 5)
	viper.SetDefault("Provider.MaxRetries", 3)
	viper.SetDefault("Provider.RetryDelayMS", 1200)
	viper.SetDefault("UsersDir", "config/users")
	viper.SetDefault("OutputDir", "public/feeds")
}
