package cardno

import (
	"fmt"
	"strings"

	"Pointly/config"
	"Pointly/pkg/snowflake"

	hashids "github.com/speps/go-hashids/v2"
)

// 卡号字符表，去掉了 0/O、1/I 这类肉眼易混的字符
const alphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// Generator 基于 hashids 的卡号生成器，雪花 ID 做输入保证全局唯一
type Generator struct {
	prefix string
	h      *hashids.HashID
}

func New(prefix, salt string) (*Generator, error) {
	hd := hashids.NewData()
	hd.Salt = salt
	hd.MinLength = 12
	hd.Alphabet = alphabet

	h, err := hashids.NewWithData(hd)
	if err != nil {
		return nil, err
	}
	return &Generator{prefix: strings.ToUpper(prefix), h: h}, nil
}

// NewFromConfig DI 入口，配置错误直接 panic（启动期失败要让进程退出）
func NewFromConfig(conf *config.Config) *Generator {
	g, err := New(conf.Card.Prefix, conf.Card.Salt)
	if err != nil {
		panic(fmt.Sprintf("初始化卡号生成器失败: %v", err))
	}
	return g
}

// Next 生成一个新的卡号，形如 PL-8FK2NQ4WXZ3M
func (g *Generator) Next() (string, error) {
	code, err := g.h.EncodeInt64([]int64{snowflake.GenID()})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s-%s", g.prefix, strings.ToUpper(code)), nil
}
