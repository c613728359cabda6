package utils

import "golang.org/x/crypto/bcrypt"

// 操作员口令统一以bcrypt摘要入库，默认代价足够离线打印终端的登录频率

// HashPassword 生成口令的bcrypt摘要
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// CheckPasswordHash 校验明文口令与存储摘要是否匹配，摘要格式非法视为不匹配
func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
