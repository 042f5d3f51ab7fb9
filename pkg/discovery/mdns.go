package discovery

import (
	"context"
	"fmt"
	"net"
	"sync"

	"github.com/enbility/zeroconf/v3"
)

// MDNSAdvertiser registers a panel with zeroconf.
type MDNSAdvertiser struct {
	config AdvertiserConfig

	mu     sync.Mutex
	server *zeroconf.Server
	info   PanelInfo
}

// NewMDNSAdvertiser creates a new mDNS advertiser.
func NewMDNSAdvertiser(config AdvertiserConfig) *MDNSAdvertiser {
	return &MDNSAdvertiser{config: config}
}

// getInterfaces returns the interfaces to advertise on. Nil means all.
func (a *MDNSAdvertiser) getInterfaces() []net.Interface {
	return selectInterface(a.config.Interface)
}

// Advertise starts advertising info, replacing any previous registration.
func (a *MDNSAdvertiser) Advertise(ctx context.Context, info *PanelInfo) error {
	if err := ValidateInstanceName(info.Name); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	a.shutdownLocked()

	port := int(info.Port)
	if port == 0 {
		port = DefaultPort
	}

	var opts []zeroconf.ServerOption
	if a.config.TTL > 0 {
		opts = append(opts, zeroconf.TTL(uint32(a.config.TTL.Seconds())))
	}

	server, err := zeroconf.Register(
		info.Name,
		ServiceType,
		Domain,
		port,
		TXTRecordsToStrings(EncodePanelTXT(info)),
		a.getInterfaces(),
		opts...,
	)
	if err != nil {
		return fmt.Errorf("failed to register panel service: %w", err)
	}

	a.server = server
	a.info = *info
	return nil
}

// Update replaces the TXT records of the running registration.
func (a *MDNSAdvertiser) Update(info *PanelInfo) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.server == nil {
		return ErrNotAdvertising
	}
	if info.Name != a.info.Name || info.Port != a.info.Port {
		return fmt.Errorf("%w: name and port are fixed while advertising", ErrInvalidTXTRecord)
	}

	a.server.SetText(TXTRecordsToStrings(EncodePanelTXT(info)))
	a.info = *info
	return nil
}

// Advertising reports whether a registration is active.
func (a *MDNSAdvertiser) Advertising() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.server != nil
}

// Stop withdraws the registration. Safe to call when not advertising.
func (a *MDNSAdvertiser) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.shutdownLocked()
}

func (a *MDNSAdvertiser) shutdownLocked() {
	if a.server != nil {
		a.server.Shutdown()
		a.server = nil
	}
}

// MDNSBrowser finds panels on the network.
type MDNSBrowser struct {
	config BrowserConfig
}

// NewMDNSBrowser creates a new mDNS browser.
func NewMDNSBrowser(config BrowserConfig) *MDNSBrowser {
	return &MDNSBrowser{config: config}
}

// Browse searches for panels until ctx is done. Services are aggregated by
// instance name; each instance is sent once, when first seen.
func (b *MDNSBrowser) Browse(ctx context.Context) (<-chan *PanelService, error) {
	out := make(chan *PanelService)

	entries := make(chan *zeroconf.ServiceEntry)
	removed := make(chan *zeroconf.ServiceEntry)

	go func() {
		defer close(out)

		agg := newAggregator()
		for {
			select {
			case entry, ok := <-entries:
				if !ok {
					return
				}
				svc := agg.add(entry)
				if svc == nil {
					continue
				}
				select {
				case out <- svc:
				case <-ctx.Done():
					return
				}

			case entry, ok := <-removed:
				if !ok {
					removed = nil
					continue
				}
				agg.remove(entry)

			case <-ctx.Done():
				return
			}
		}
	}()

	opts := b.browserOptions()
	go func() {
		_ = zeroconf.Browse(ctx, ServiceType, Domain, entries, removed, opts...)
	}()

	return out, nil
}

// aggregator merges browse entries by instance name. It keeps its own
// records; callers only ever see copies.
type aggregator struct {
	services map[string]*PanelService
}

func newAggregator() *aggregator {
	return &aggregator{services: make(map[string]*PanelService)}
}

// add records entry. It returns a copy of the service when the instance is
// new, and nil for a known instance or an entry with bad TXT records.
func (a *aggregator) add(entry *zeroconf.ServiceEntry) *PanelService {
	svc := entryToPanel(entry)
	if svc == nil {
		return nil
	}
	if existing, found := a.services[svc.InstanceName]; found {
		existing.Addresses = mergeAddresses(existing.Addresses, svc.Addresses)
		return nil
	}
	a.services[svc.InstanceName] = svc
	cp := *svc
	cp.Addresses = append([]string(nil), svc.Addresses...)
	return &cp
}

// remove drops the addresses of entry, and the instance once none are left.
func (a *aggregator) remove(entry *zeroconf.ServiceEntry) {
	existing, found := a.services[entry.Instance]
	if !found {
		return
	}
	existing.Addresses = removeAddresses(existing.Addresses, entry)
	if len(existing.Addresses) == 0 {
		delete(a.services, entry.Instance)
	}
}

// FindPanel browses until a panel with the given name shows up.
// Without a deadline on ctx, BrowseTimeout applies.
func (b *MDNSBrowser) FindPanel(ctx context.Context, name string) (*PanelService, error) {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, BrowseTimeout)
		defer cancel()
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	found, err := b.Browse(ctx)
	if err != nil {
		return nil, err
	}
	for svc := range found {
		if svc.Name == name || svc.InstanceName == name {
			return svc, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
}

func (b *MDNSBrowser) browserOptions() []zeroconf.ClientOption {
	var opts []zeroconf.ClientOption
	if ifaces := selectInterface(b.config.Interface); ifaces != nil {
		opts = append(opts, zeroconf.SelectIfaces(ifaces))
	}
	return opts
}

func selectInterface(name string) []net.Interface {
	if name == "" {
		return nil
	}
	iface, err := net.InterfaceByName(name)
	if err != nil {
		return nil
	}
	return []net.Interface{*iface}
}

// entryToPanel converts a zeroconf entry. Entries with bad TXT records are dropped.
func entryToPanel(entry *zeroconf.ServiceEntry) *PanelService {
	info, err := DecodePanelTXT(StringsToTXTRecords(entry.Text))
	if err != nil {
		return nil
	}
	return &PanelService{
		InstanceName: entry.Instance,
		Host:         entry.HostName,
		Port:         uint16(entry.Port),
		Addresses:    entryAddresses(entry),
		PanelInfo:    *info,
	}
}

func entryAddresses(entry *zeroconf.ServiceEntry) []string {
	addrs := make([]string, 0, len(entry.AddrIPv4)+len(entry.AddrIPv6))
	for _, ip := range entry.AddrIPv4 {
		addrs = append(addrs, ip.String())
	}
	for _, ip := range entry.AddrIPv6 {
		addrs = append(addrs, ip.String())
	}
	return addrs
}

// mergeAddresses appends the addresses of add not already in existing.
func mergeAddresses(existing, add []string) []string {
	seen := make(map[string]bool, len(existing))
	for _, addr := range existing {
		seen[addr] = true
	}
	for _, addr := range add {
		if !seen[addr] {
			existing = append(existing, addr)
			seen[addr] = true
		}
	}
	return existing
}

// removeAddresses drops the addresses carried by entry.
func removeAddresses(addresses []string, entry *zeroconf.ServiceEntry) []string {
	gone := make(map[string]bool)
	for _, addr := range entryAddresses(entry) {
		gone[addr] = true
	}
	result := make([]string, 0, len(addresses))
	for _, addr := range addresses {
		if !gone[addr] {
			result = append(result, addr)
		}
	}
	return result
}
