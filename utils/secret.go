package utils

import "encoding/base64"

// EncodeSecret / DecodeSecret 对顾问的APIConfig负载做可逆的base64编码。
// 注意：这只是防止明文直接暴露在数据库里的混淆手段，不是加密，
// 接入真正的密钥管理服务之前不要依赖它保护凭证。
func EncodeSecret(plain string) string {
	return base64.StdEncoding.EncodeToString([]byte(plain))
}

func DecodeSecret(encoded string) (string, error) {
	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
