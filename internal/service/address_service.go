package service

import (
	"context"
	"errors"
	"time"

	"github.com/santofavo/encomendas/internal/cache"
	"github.com/santofavo/encomendas/internal/logger"
	"github.com/santofavo/encomendas/internal/viacep"
)

// AddressLookuper 邮编查询
type AddressLookuper interface {
	Lookup(ctx context.Context, cep string) (*viacep.Address, error)
}

// AddressResult 查询结果，Address 为空表示未找到或查询失败
type AddressResult struct {
	CEP     string `json:"cep"`
	Address string `json:"endereco"`
}

// AddressService 邮编补全服务（尽力而为，失败时返回空地址）
type AddressService struct {
	lookup  AddressLookuper
	enabled bool
	ttl     time.Duration
}

// NewAddressService 创建邮编补全服务
func NewAddressService(lookup AddressLookuper, enabled bool, ttl time.Duration) *AddressService {
	return &AddressService{lookup: lookup, enabled: enabled && lookup != nil, ttl: ttl}
}

// Resolve 邮编转地址，任何错误都不向上返回
func (s *AddressService) Resolve(ctx context.Context, rawCEP string) AddressResult {
	cep, err := viacep.NormalizeCEP(rawCEP)
	if err != nil {
		return AddressResult{CEP: rawCEP}
	}
	result := AddressResult{CEP: cep}
	if !s.enabled {
		return result
	}

	result, _ = cache.Remember(ctx, cache.AddressKey(cep), s.ttl, func(ctx context.Context) (AddressResult, bool, error) {
		addr, err := s.lookup.Lookup(ctx, cep)
		switch {
		case err == nil:
			return AddressResult{CEP: cep, Address: addr.Format()}, true, nil
		case errors.Is(err, viacep.ErrNotFound), errors.Is(err, viacep.ErrInvalidCEP):
			logger.Infow("address_not_found", "cep", cep)
			return AddressResult{CEP: cep}, true, nil
		default:
			// 临时故障不缓存
			logger.Warnw("address_lookup_failed", "cep", cep, "error", err)
			return AddressResult{CEP: cep}, false, nil
		}
	})
	return result
}
