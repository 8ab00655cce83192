// Package application 实现用户服务的应用层逻辑。
package application

import (
	"context"
	"fmt"

	"github.com/wyfcoding/freshmall/internal/user/domain"
)

// AddressDTO 地址数据传输对象
type AddressDTO struct {
	ID        uint64 `json:"id"`
	Receiver  string `json:"receiver"`
	Addr      string `json:"addr"`
	ZipCode   string `json:"zip_code"`
	Phone     string `json:"phone"`
	IsDefault bool   `json:"is_default"`
}

// AddAddressCommand 新增地址命令
type AddAddressCommand struct {
	UserID   uint64
	Receiver string
	Addr     string
	ZipCode  string
	Phone    string
}

// AddressService 地址应用服务
type AddressService struct {
	repo domain.AddressRepository
}

// NewAddressService 创建地址应用服务实例
func NewAddressService(repo domain.AddressRepository) *AddressService {
	return &AddressService{repo: repo}
}

func toAddressDTO(addr *domain.Address) *AddressDTO {
	return &AddressDTO{
		ID:        uint64(addr.ID),
		Receiver:  addr.Receiver,
		Addr:      addr.Addr,
		ZipCode:   addr.ZipCode,
		Phone:     addr.Phone,
		IsDefault: addr.IsDefault,
	}
}

// ListAddresses 列出用户的全部地址，默认地址排在最前
func (s *AddressService) ListAddresses(ctx context.Context, userID uint64) ([]*AddressDTO, error) {
	addrs, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	dtos := make([]*AddressDTO, 0, len(addrs))
	for _, addr := range addrs {
		dtos = append(dtos, toAddressDTO(addr))
	}
	return dtos, nil
}

// AddAddress 新增地址，用户的第一条地址自动成为默认地址
func (s *AddressService) AddAddress(ctx context.Context, cmd AddAddressCommand) (*AddressDTO, error) {
	if cmd.Receiver == "" || cmd.Addr == "" || cmd.Phone == "" {
		return nil, fmt.Errorf("receiver, addr and phone are required")
	}

	hasAny, err := s.repo.HasAny(ctx, cmd.UserID)
	if err != nil {
		return nil, err
	}

	addr := &domain.Address{
		UserID:    cmd.UserID,
		Receiver:  cmd.Receiver,
		Addr:      cmd.Addr,
		ZipCode:   cmd.ZipCode,
		Phone:     cmd.Phone,
		IsDefault: !hasAny,
	}
	if err := s.repo.Save(ctx, addr); err != nil {
		return nil, err
	}
	return toAddressDTO(addr), nil
}

// Default 返回用户的默认地址，没有则返回 nil
func (s *AddressService) Default(ctx context.Context, userID uint64) (*AddressDTO, error) {
	addr, err := s.repo.Default(ctx, userID)
	if err != nil {
		return nil, err
	}
	if addr == nil {
		return nil, nil
	}
	return toAddressDTO(addr), nil
}
