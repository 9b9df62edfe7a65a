// Package syslogship forwards JSON Lines records to a syslog collector as
// RFC 5424 messages over UDP, TCP or TLS.
//
// A [Shipper] is built once from a validated [Config]. All TLS material is
// loaded by [New], so a missing certificate or an incomplete client key pair
// is reported before any socket is opened.
//
// Single source:
//
//	s, err := syslogship.New(syslogship.DefaultConfig())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	report, err := s.SendFile(ctx, "events.jsonl")
//
// Incremental directory mode remembers the newest modification time it has
// forwarded in a state file and, on the next run, only sends files at least
// that recent:
//
//	report, err := s.RunDirectory(ctx, syslogship.DirConfig{Dir: "/var/log/app"})
//
// Delivery is best effort. Malformed lines and failed sends are counted in
// the returned reports and never retried.
package syslogship
