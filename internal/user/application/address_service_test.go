package application

import (
	"context"
	"testing"

	"github.com/wyfcoding/freshmall/internal/user/domain"
)

type fakeAddressRepo struct {
	addrs  []*domain.Address
	nextID uint
}

func (f *fakeAddressRepo) Save(_ context.Context, addr *domain.Address) error {
	if addr.ID == 0 {
		f.nextID++
		addr.ID = f.nextID
		f.addrs = append(f.addrs, addr)
	}
	return nil
}

func (f *fakeAddressRepo) Get(_ context.Context, id uint64) (*domain.Address, error) {
	for _, addr := range f.addrs {
		if uint64(addr.ID) == id {
			return addr, nil
		}
	}
	return nil, nil
}

func (f *fakeAddressRepo) ListByUser(_ context.Context, userID uint64) ([]*domain.Address, error) {
	var out []*domain.Address
	for _, addr := range f.addrs {
		if addr.UserID == userID && addr.IsDefault {
			out = append(out, addr)
		}
	}
	for _, addr := range f.addrs {
		if addr.UserID == userID && !addr.IsDefault {
			out = append(out, addr)
		}
	}
	return out, nil
}

func (f *fakeAddressRepo) Default(_ context.Context, userID uint64) (*domain.Address, error) {
	for _, addr := range f.addrs {
		if addr.UserID == userID && addr.IsDefault {
			return addr, nil
		}
	}
	return nil, nil
}

func (f *fakeAddressRepo) HasAny(_ context.Context, userID uint64) (bool, error) {
	for _, addr := range f.addrs {
		if addr.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

func TestAddAddressFirstBecomesDefault(t *testing.T) {
	svc := NewAddressService(&fakeAddressRepo{})
	ctx := context.Background()

	first, err := svc.AddAddress(ctx, AddAddressCommand{
		UserID: 100, Receiver: "张三", Addr: "幸福路 1 号", Phone: "13800000001",
	})
	if err != nil {
		t.Fatalf("AddAddress() error = %v", err)
	}
	if !first.IsDefault {
		t.Error("first address should be default")
	}

	second, err := svc.AddAddress(ctx, AddAddressCommand{
		UserID: 100, Receiver: "张三", Addr: "平安街 2 号", Phone: "13800000001",
	})
	if err != nil {
		t.Fatalf("AddAddress() error = %v", err)
	}
	if second.IsDefault {
		t.Error("second address should not be default")
	}

	def, err := svc.Default(ctx, 100)
	if err != nil {
		t.Fatalf("Default() error = %v", err)
	}
	if def == nil || def.ID != first.ID {
		t.Errorf("default = %+v, want first address %d", def, first.ID)
	}
}

func TestAddAddressValidation(t *testing.T) {
	svc := NewAddressService(&fakeAddressRepo{})
	_, err := svc.AddAddress(context.Background(), AddAddressCommand{UserID: 100, Receiver: "张三"})
	if err == nil {
		t.Error("AddAddress() expected error for missing fields")
	}
}

func TestListAddressesDefaultFirst(t *testing.T) {
	svc := NewAddressService(&fakeAddressRepo{})
	ctx := context.Background()

	for _, addr := range []string{"幸福路 1 号", "平安街 2 号", "建设路 3 号"} {
		if _, err := svc.AddAddress(ctx, AddAddressCommand{
			UserID: 100, Receiver: "张三", Addr: addr, Phone: "13800000001",
		}); err != nil {
			t.Fatalf("AddAddress() error = %v", err)
		}
	}

	addrs, err := svc.ListAddresses(ctx, 100)
	if err != nil {
		t.Fatalf("ListAddresses() error = %v", err)
	}
	if len(addrs) != 3 {
		t.Fatalf("addresses = %d, want 3", len(addrs))
	}
	if !addrs[0].IsDefault {
		t.Error("default address should come first")
	}
}

func TestDefaultNoAddress(t *testing.T) {
	svc := NewAddressService(&fakeAddressRepo{})
	def, err := svc.Default(context.Background(), 100)
	if err != nil {
		t.Fatalf("Default() error = %v", err)
	}
	if def != nil {
		t.Errorf("default = %+v, want nil", def)
	}
}
