package validators

import (
	"context"
	"net"
	"strings"
	"time"
)

const lookupTimeout = 3 * time.Second

// NormalizeEmail é a forma canônica usada em cadastro, login e buscas.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// IsEmailDomainValid aceita o e-mail quando o domínio tem MX ou, na falta
// dele, algum endereço.
func IsEmailDomainValid(email string) bool {
	return isDomainResolvable(net.DefaultResolver, email)
}

type resolver interface {
	LookupMX(ctx context.Context, name string) ([]*net.MX, error)
	LookupIPAddr(ctx context.Context, host string) ([]net.IPAddr, error)
}

func isDomainResolvable(r resolver, email string) bool {
	at := strings.LastIndex(email, "@")
	if at < 0 || at == len(email)-1 {
		return false
	}

	domain := email[at+1:]

	ctx, cancel := context.WithTimeout(context.Background(), lookupTimeout)
	defer cancel()

	if mx, err := r.LookupMX(ctx, domain); err == nil && len(mx) > 0 {
		return true
	}

	if ips, err := r.LookupIPAddr(ctx, domain); err == nil && len(ips) > 0 {
		return true
	}

	return false
}
