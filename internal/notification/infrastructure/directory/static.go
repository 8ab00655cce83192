// Package directory 提供收件人目录接口的实现。
package directory

import (
	"context"
	"fmt"
)

// StaticDirectory 按固定邮箱域名拼出收件地址。
// 用户邮箱由认证网关维护，本服务拿不到真实邮箱时以此兜底。
type StaticDirectory struct {
	mailDomain string
}

// NewStaticDirectory 创建静态收件人目录实例
func NewStaticDirectory(mailDomain string) *StaticDirectory {
	if mailDomain == "" {
		mailDomain = "freshmall.local"
	}
	return &StaticDirectory{mailDomain: mailDomain}
}

func (d *StaticDirectory) Lookup(_ context.Context, userID uint64) (string, error) {
	return fmt.Sprintf("user-%d@%s", userID, d.mailDomain), nil
}
