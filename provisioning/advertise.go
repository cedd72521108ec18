package provisioning

import (
	"context"

	"github.com/brutella/dnssd"

	"github.com/ardnew/emberhal/pkg"
)

// Advertiser publishes (and withdraws) a DNS-SD service record
// announcing this station once it is provisioned. This is additive
// instrumentation on top of the transition table, not a new state:
// wiring it into a [Machine]'s ChangeFunc does not change any
// transition.
type Advertiser interface {
	Announce(ctx context.Context, instance string, port int) error
	Withdraw()
}

// DNSSDAdvertiser publishes a DNS-SD service record via
// github.com/brutella/dnssd, advertising the station as soon as
// provisioning reaches CONNECTED and withdrawing it on
// disconnect/reset.
type DNSSDAdvertiser struct {
	serviceType string
	responder   dnssd.Responder
	handle      dnssd.ServiceHandle
	cancel      context.CancelFunc
}

// NewDNSSDAdvertiser creates an advertiser for the given DNS-SD service
// type, e.g. "_emberhal-prov._tcp".
func NewDNSSDAdvertiser(serviceType string) *DNSSDAdvertiser {
	return &DNSSDAdvertiser{serviceType: serviceType}
}

// Announce publishes a service record for instance on port, starting
// the underlying responder's event loop in the background.
func (a *DNSSDAdvertiser) Announce(ctx context.Context, instance string, port int) error {
	cfg := dnssd.Config{
		Name: instance,
		Type: a.serviceType,
		Port: port,
	}
	svc, err := dnssd.NewService(cfg)
	if err != nil {
		return err
	}

	responder, err := dnssd.NewResponder()
	if err != nil {
		return err
	}
	handle, err := responder.Add(svc)
	if err != nil {
		return err
	}

	runCtx, cancel := context.WithCancel(ctx)
	a.responder = responder
	a.handle = handle
	a.cancel = cancel

	go func() {
		if err := responder.Respond(runCtx); err != nil {
			pkg.LogWarn(pkg.ComponentProvisioning, "dnssd responder stopped", "error", err)
		}
	}()

	pkg.LogInfo(pkg.ComponentProvisioning, "service advertised", "instance", instance, "port", port)
	return nil
}

// Withdraw cancels the responder's event loop, removing the service
// record.
func (a *DNSSDAdvertiser) Withdraw() {
	if a.cancel != nil {
		a.cancel()
		a.cancel = nil
	}
	pkg.LogInfo(pkg.ComponentProvisioning, "service withdrawn")
}

// OnMachineChange returns a [ChangeFunc] that announces on entering
// CONNECTED and withdraws on leaving it, suitable for passing straight
// into [NewMachine] or composing with another callback.
func OnMachineChange(ctx context.Context, adv Advertiser, instance string, port int) ChangeFunc {
	return func(oldState, newState State) {
		switch {
		case newState == StateConnected:
			if err := adv.Announce(ctx, instance, port); err != nil {
				pkg.LogWarn(pkg.ComponentProvisioning, "advertise failed", "error", err)
			}
		case oldState == StateConnected:
			adv.Withdraw()
		}
	}
}
