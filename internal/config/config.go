package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// AppConfig 汇总运行服务所需的基础配置。
type AppConfig struct {
	ListenAddr    string           `mapstructure:"listen_addr"`
	DatabasePath  string           `mapstructure:"database_path"`
	SessionSecret string           `mapstructure:"session_secret"`
	GinMode       string           `mapstructure:"gin_mode"`
	Log           LogConfig        `mapstructure:"log"`
	Auth          AuthConfig       `mapstructure:"auth"`
	Assets        AssetsConfig     `mapstructure:"assets"`
	Inspection    InspectionConfig `mapstructure:"inspection"`
	Policy        PolicyConfig     `mapstructure:"policy"`
}

// LogConfig controls logger level and output format (text or json).
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// AuthConfig holds the operator allow-list.
type AuthConfig struct {
	PrivilegedIdentities []string `mapstructure:"privileged_identities"`
}

// AssetsConfig 描述封面与内页文件所在的对象存储。
// Driver 为 s3 时使用 Bucket/Region/Endpoint 生成预签名链接，static 时直接拼接 BaseURL。
type AssetsConfig struct {
	Driver    string        `mapstructure:"driver"`
	Bucket    string        `mapstructure:"bucket"`
	Region    string        `mapstructure:"region"`
	Endpoint  string        `mapstructure:"endpoint"`
	Prefix    string        `mapstructure:"prefix"`
	PathStyle bool          `mapstructure:"path_style"`
	URLTTL    time.Duration `mapstructure:"url_ttl"`
	BaseURL   string        `mapstructure:"base_url"`
}

// InspectionConfig bounds document retrieval during publication.
type InspectionConfig struct {
	Timeout          time.Duration `mapstructure:"timeout"`
	RetryAttempts    int           `mapstructure:"retry_attempts"`
	MaxDocumentBytes int64         `mapstructure:"max_document_bytes"`
}

// PolicyConfig is the numeric publication policy. All sizes are PDF points.
type PolicyConfig struct {
	ReleaseName  LengthBounds `mapstructure:"release_name"`
	ReleaseNotes LengthBounds `mapstructure:"release_notes"`
	Print        PrintConfig  `mapstructure:"print"`
}

// LengthBounds is an inclusive rune-count range.
type LengthBounds struct {
	Min int `mapstructure:"min"`
	Max int `mapstructure:"max"`
}

// PrintConfig groups interior and cover rules.
type PrintConfig struct {
	Interior InteriorConfig `mapstructure:"interior"`
	Cover    CoverConfig    `mapstructure:"cover"`
}

// InteriorConfig 内页页数范围与单页尺寸。
type InteriorConfig struct {
	MinPages  int     `mapstructure:"min_pages"`
	MaxPages  int     `mapstructure:"max_pages"`
	Width     float64 `mapstructure:"width"`
	Height    float64 `mapstructure:"height"`
	Tolerance float64 `mapstructure:"tolerance"`
}

// CoverConfig 封面页数与书脊宽度参数。
type CoverConfig struct {
	Pages        int     `mapstructure:"pages"`
	Bleed        float64 `mapstructure:"bleed"`
	SpineBase    float64 `mapstructure:"spine_base"`
	SpinePerPage float64 `mapstructure:"spine_per_page"`
	Tolerance    float64 `mapstructure:"tolerance"`
}

const envPrefix = "FOLIOSHELF"

// Load 从环境变量与可选的 YAML 文件读取应用配置，并为缺失项提供默认值。
// configFile 为空时回退到 FOLIOSHELF_CONFIG 环境变量，仍为空则只读取环境变量。
func Load(configFile string) (AppConfig, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	path := strings.TrimSpace(configFile)
	if path == "" {
		path = strings.TrimSpace(v.GetString("config"))
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return AppConfig{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg AppConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return AppConfig{}, fmt.Errorf("decode config: %w", err)
	}
	cfg.Auth.PrivilegedIdentities = splitIdentities(cfg.Auth.PrivilegedIdentities)

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("config", "")
	v.SetDefault("listen_addr", ":8080")
	v.SetDefault("database_path", "folioshelf.db")
	v.SetDefault("session_secret", "folioshelf-dev-secret")
	v.SetDefault("gin_mode", "release")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("auth.privileged_identities", []string{})

	v.SetDefault("assets.driver", "static")
	v.SetDefault("assets.bucket", "")
	v.SetDefault("assets.region", "")
	v.SetDefault("assets.endpoint", "")
	v.SetDefault("assets.prefix", "")
	v.SetDefault("assets.path_style", false)
	v.SetDefault("assets.url_ttl", 15*time.Minute)
	v.SetDefault("assets.base_url", "http://localhost:8080/assets")

	v.SetDefault("inspection.timeout", 60*time.Second)
	v.SetDefault("inspection.retry_attempts", 3)
	v.SetDefault("inspection.max_document_bytes", int64(512<<20))

	p := DefaultPolicy()
	v.SetDefault("policy.release_name.min", p.ReleaseName.Min)
	v.SetDefault("policy.release_name.max", p.ReleaseName.Max)
	v.SetDefault("policy.release_notes.min", p.ReleaseNotes.Min)
	v.SetDefault("policy.release_notes.max", p.ReleaseNotes.Max)
	v.SetDefault("policy.print.interior.min_pages", p.Print.Interior.MinPages)
	v.SetDefault("policy.print.interior.max_pages", p.Print.Interior.MaxPages)
	v.SetDefault("policy.print.interior.width", p.Print.Interior.Width)
	v.SetDefault("policy.print.interior.height", p.Print.Interior.Height)
	v.SetDefault("policy.print.interior.tolerance", p.Print.Interior.Tolerance)
	v.SetDefault("policy.print.cover.pages", p.Print.Cover.Pages)
	v.SetDefault("policy.print.cover.bleed", p.Print.Cover.Bleed)
	v.SetDefault("policy.print.cover.spine_base", p.Print.Cover.SpineBase)
	v.SetDefault("policy.print.cover.spine_per_page", p.Print.Cover.SpinePerPage)
	v.SetDefault("policy.print.cover.tolerance", p.Print.Cover.Tolerance)
}

// DefaultPolicy returns the placeholder policy used when a deployment does not
// override it: a 6x9in trim with 0.125in bleed.
func DefaultPolicy() PolicyConfig {
	return PolicyConfig{
		ReleaseName:  LengthBounds{Min: 1, Max: 100},
		ReleaseNotes: LengthBounds{Min: 0, Max: 5000},
		Print: PrintConfig{
			Interior: InteriorConfig{
				MinPages:  24,
				MaxPages:  800,
				Width:     432,
				Height:    648,
				Tolerance: 1,
			},
			Cover: CoverConfig{
				Pages:        1,
				Bleed:        9,
				SpineBase:    0,
				SpinePerPage: 0.18,
				Tolerance:    2,
			},
		},
	}
}

// env 中的列表以逗号分隔，viper 不会自动拆分单个元素。
func splitIdentities(values []string) []string {
	out := make([]string, 0, len(values))
	for _, value := range values {
		for _, part := range strings.Split(value, ",") {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				out = append(out, trimmed)
			}
		}
	}
	return out
}
