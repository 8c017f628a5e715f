package checks

import (
	"context"
	"fmt"
	"net"
	"strings"

	"github.com/miekg/dns"
)

// DNS checks that a name resolves against a specific server.
type DNS struct {
	base
	server string
	host   string
	qtype  uint16
	client *dns.Client
}

// NewDNS creates a DNS check that resolves host against server. A server
// without a port gets port 53.
func NewDNS(name, server, host string, opts ...Option) (*DNS, error) {
	if server == "" || host == "" {
		return nil, fmt.Errorf("%w: dns %q: server and host are required", ErrInvalidCheck, name)
	}
	if _, _, err := net.SplitHostPort(server); err != nil {
		server = net.JoinHostPort(server, "53")
	}
	s, b, err := newSettings("dns", name, map[string]string{"server": server, "host": host}, opts)
	if err != nil {
		return nil, err
	}

	recordType := s.recordType
	if recordType == "" {
		recordType = "A"
	}
	qtype, err := parseQType(recordType)
	if err != nil {
		return nil, fmt.Errorf("%w: dns %q: %w", ErrInvalidCheck, name, err)
	}
	b.metadata["record_type"] = strings.ToUpper(recordType)

	return &DNS{
		base:   b,
		server: server,
		host:   host,
		qtype:  qtype,
		client: &dns.Client{Timeout: s.timeout},
	}, nil
}

// Execute sends one query and requires a successful rcode with at least one
// record of the requested type.
func (d *DNS) Execute(ctx context.Context) error {
	msg := new(dns.Msg)
	msg.SetQuestion(dns.Fqdn(d.host), d.qtype)
	msg.RecursionDesired = true

	resp, _, err := d.client.ExchangeContext(ctx, msg, d.server)
	if err != nil {
		return fmt.Errorf("dns %s %s: %w", dns.TypeToString[d.qtype], d.host, err)
	}
	if resp.Rcode != dns.RcodeSuccess {
		return fmt.Errorf("dns %s %s: rcode %s", dns.TypeToString[d.qtype], d.host, dns.RcodeToString[resp.Rcode])
	}
	for _, rr := range resp.Answer {
		if rr.Header().Rrtype == d.qtype {
			return nil
		}
	}
	return fmt.Errorf("%w: dns %s %s", ErrNoAnswer, dns.TypeToString[d.qtype], d.host)
}

func parseQType(s string) (uint16, error) {
	switch strings.ToUpper(s) {
	case "A":
		return dns.TypeA, nil
	case "AAAA":
		return dns.TypeAAAA, nil
	default:
		return 0, fmt.Errorf("unsupported record type %q (supported: A, AAAA)", s)
	}
}
