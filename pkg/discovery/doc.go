// Package discovery advertises a running camera panel over mDNS/DNS-SD.
//
// # Panel Service (_vcpanel._tcp)
//
// Each panel process registers one instance. The instance name is the
// configured panel name. TXT records describe the panel:
//
//	name=<panel name>
//	ver=<panel version>
//	codec=<codec key>
//	cams=<camera count>
//	rdy=<1 once the codec is ready, else 0>
//	sid=<session ID> (optional)
//
// Browsers aggregate entries per instance name, merging the addresses seen
// on different interfaces into one PanelService.
package discovery
