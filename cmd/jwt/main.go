package main

import (
	"crypto/rand"
	"encoding/base64"
	"log/slog"
)

// 生成登录令牌签名用的随机密钥，输出填入配置文件的 jwt.secret_key
func main() {
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		slog.Error("Failed to generate jwt secret", "err", err)
		return
	}

	slog.Info("Generated jwt secret, set it as jwt.secret_key in config.yaml",
		"secret", base64.URLEncoding.EncodeToString(key))
}
