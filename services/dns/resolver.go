package dns

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	mdns "github.com/miekg/dns"
	"github.com/pkg/errors"

	"github.com/inboundhq/domainstack/dto"
	"github.com/inboundhq/domainstack/interfaces"
	"github.com/inboundhq/domainstack/internal/enum"
	er "github.com/inboundhq/domainstack/internal/errors"
)

const queryTimeout = 5 * time.Second

// FallbackResolverSets are the public resolvers tried in order when the
// default resolver fails or returns nothing: Google, Cloudflare, OpenDNS.
// Within one verification pass the sets are tried strictly sequentially so
// public resolvers are only queried when the default resolver comes up empty.
var FallbackResolverSets = [][]string{
	{"8.8.8.8", "8.8.4.4"},
	{"1.1.1.1", "1.0.0.1"},
	{"208.67.222.222", "208.67.220.220"},
}

var qtypeByRecordType = map[enum.DnsRecordType]uint16{
	enum.DnsRecordTypeA:     mdns.TypeA,
	enum.DnsRecordTypeMX:    mdns.TypeMX,
	enum.DnsRecordTypeTXT:   mdns.TypeTXT,
	enum.DnsRecordTypeCNAME: mdns.TypeCNAME,
	enum.DnsRecordTypeNS:    mdns.TypeNS,
}

type resolver struct {
	client            *mdns.Client
	systemNameservers []string
}

func NewResolver() interfaces.DNSResolver {
	return &resolver{
		client: &mdns.Client{
			Timeout: queryTimeout,
		},
		systemNameservers: systemNameservers(),
	}
}

// systemNameservers reads /etc/resolv.conf, defaulting to Google public DNS
// when the file is unreadable (containers without resolv.conf).
func systemNameservers() []string {
	config, err := mdns.ClientConfigFromFile("/etc/resolv.conf")
	if err != nil || len(config.Servers) == 0 {
		return []string{"8.8.8.8:53", "8.8.4.4:53"}
	}

	servers := make([]string, 0, len(config.Servers))
	for _, s := range config.Servers {
		servers = append(servers, withDefaultPort(s))
	}
	return servers
}

func withDefaultPort(server string) string {
	if !strings.Contains(server, ":") {
		return server + ":53"
	}
	return server
}

func ensureAbsolute(name string) string {
	if !strings.HasSuffix(name, ".") {
		return name + "."
	}
	return name
}

func (r *resolver) Resolve(ctx context.Context, recordType enum.DnsRecordType, name string) ([]string, error) {
	return r.queryServers(ctx, r.systemNameservers, recordType, name)
}

func (r *resolver) ResolveWithServers(ctx context.Context, servers []string, recordType enum.DnsRecordType, name string) ([]string, error) {
	withPorts := make([]string, 0, len(servers))
	for _, s := range servers {
		withPorts = append(withPorts, withDefaultPort(s))
	}
	return r.queryServers(ctx, withPorts, recordType, name)
}

func (r *resolver) LookupMX(ctx context.Context, name string) ([]dto.MXRecord, error) {
	resp, err := r.exchange(ctx, r.systemNameservers, mdns.TypeMX, name)
	if err != nil {
		return nil, err
	}

	var records []dto.MXRecord
	for _, rr := range resp.Answer {
		if mx, ok := rr.(*mdns.MX); ok {
			records = append(records, dto.MXRecord{
				Priority: mx.Preference,
				Exchange: strings.TrimSuffix(mx.Mx, "."),
			})
		}
	}
	if len(records) == 0 {
		return nil, er.ErrDnsNotFound
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].Priority < records[j].Priority
	})
	return records, nil
}

func (r *resolver) queryServers(ctx context.Context, servers []string, recordType enum.DnsRecordType, name string) ([]string, error) {
	qtype, ok := qtypeByRecordType[recordType]
	if !ok {
		return nil, errors.Wrapf(er.ErrUnsupportedDnsType, "%s", recordType)
	}

	resp, err := r.exchange(ctx, servers, qtype, name)
	if err != nil {
		return nil, err
	}

	values := extractValues(resp, qtype)
	if len(values) == 0 {
		// NOERROR with an empty answer section, same signal as NXDOMAIN
		return nil, er.ErrDnsNotFound
	}
	return values, nil
}

// exchange queries the given servers in order and returns the first answer.
// NXDOMAIN maps to ErrDnsNotFound; SERVFAIL, refusals and timeouts are
// collapsed into ErrDnsTransientFailure once every server has been tried.
func (r *resolver) exchange(ctx context.Context, servers []string, qtype uint16, name string) (*mdns.Msg, error) {
	m := new(mdns.Msg)
	m.SetQuestion(ensureAbsolute(name), qtype)
	m.RecursionDesired = true

	var lastErr error
	for _, server := range servers {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		resp, _, err := r.client.ExchangeContext(ctx, m, server)
		if err != nil {
			lastErr = err
			continue
		}

		switch resp.Rcode {
		case mdns.RcodeSuccess:
			return resp, nil
		case mdns.RcodeNameError:
			return nil, er.ErrDnsNotFound
		default:
			lastErr = fmt.Errorf("rcode %s from %s", mdns.RcodeToString[resp.Rcode], server)
			continue
		}
	}

	if lastErr != nil {
		return nil, errors.Wrap(er.ErrDnsTransientFailure, lastErr.Error())
	}
	return nil, er.ErrDnsTransientFailure
}

// extractValues flattens answer records into strings. TXT segments within a
// single record are joined into one logical value; separate TXT records stay
// separate values. MX answers are formatted "<priority> <exchange>".
func extractValues(resp *mdns.Msg, qtype uint16) []string {
	var values []string
	for _, rr := range resp.Answer {
		switch record := rr.(type) {
		case *mdns.TXT:
			if qtype == mdns.TypeTXT {
				values = append(values, strings.Join(record.Txt, ""))
			}
		case *mdns.MX:
			if qtype == mdns.TypeMX {
				values = append(values, fmt.Sprintf("%d %s", record.Preference, strings.TrimSuffix(record.Mx, ".")))
			}
		case *mdns.CNAME:
			if qtype == mdns.TypeCNAME {
				values = append(values, strings.TrimSuffix(record.Target, "."))
			}
		case *mdns.NS:
			if qtype == mdns.TypeNS {
				values = append(values, strings.TrimSuffix(record.Ns, "."))
			}
		case *mdns.A:
			if qtype == mdns.TypeA {
				values = append(values, record.A.String())
			}
		}
	}
	return values
}
