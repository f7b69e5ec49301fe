package config

type App struct {
	Env   string `json:"env" yaml:"env"`
	Debug bool   `json:"debug" yaml:"debug"`
}

type Jwt struct {
	Secret    string `json:"secret" yaml:"secret"`
	ExpiresIn int    `json:"expires_in" yaml:"expires_in"` // access token 有效期，秒
}

// Card 兑换卡号生成配置
type Card struct {
	Prefix string `json:"prefix" yaml:"prefix"`
	Salt   string `json:"salt" yaml:"salt"`
}
