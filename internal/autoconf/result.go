package autoconf

import (
	"net/netip"

	"ezsingbox/internal/generator"
)

// GeneratedUser is a user as materialized by a build: the password is
// always present, the UUID only for protocols that authenticate with one.
type GeneratedUser struct {
	Name     string
	Password string
	UUID     string
}

// Info is the part of a build result every protocol shares.
type Info struct {
	// PublicIP is the address the inbound is reachable at; invalid when the
	// build ran purely against an explicit domain.
	PublicIP netip.Addr
	// Domain is the name clients connect with (explicit, derived, or for
	// REALITY the public-IP string).
	Domain string
	Port   uint16
	Users  []GeneratedUser
}

// ConnectionInfo is what a client needs to reach the inbound.
type ConnectionInfo struct {
	// Server prefers the public IP, then the domain, then the listen
	// address.
	Server     string
	Port       uint16
	ServerName string
}

func connectionInfo(ip netip.Addr, domain, listen string, port uint16) ConnectionInfo {
	server := listen
	if domain != "" {
		server = domain
	}
	if ip.IsValid() {
		server = ip.String()
	}
	return ConnectionInfo{Server: server, Port: port, ServerName: domain}
}

// userSpec is a user as accumulated by setters; empty credential fields are
// generated at Build.
type userSpec struct {
	name     string
	password string
	uuid     string
}

func (u userSpec) materialize(withUUID bool) GeneratedUser {
	out := GeneratedUser{Name: u.name, Password: u.password, UUID: u.uuid}
	if out.Name == "" {
		out.Name = DefaultUserName
	}
	if out.Password == "" {
		out.Password = generator.Password()
	}
	if withUUID && out.UUID == "" {
		out.UUID = generator.UUID()
	}
	return out
}

// materializeUsers fills in missing credentials, inserting the default user
// when none were added.
func materializeUsers(specs []userSpec, withUUID bool) []GeneratedUser {
	if len(specs) == 0 {
		specs = []userSpec{{name: DefaultUserName}}
	}
	users := make([]GeneratedUser, len(specs))
	for i, s := range specs {
		users[i] = s.materialize(withUUID)
	}
	return users
}
