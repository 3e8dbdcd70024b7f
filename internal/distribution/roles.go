// Package distribution splits a job payment between the company and the people
// who worked on the job.
//
// Two policies exist. The basic policy uses fixed rates (30% company, 70% split
// between developer, job hunter and communicator). The advanced policy takes
// caller-supplied percentages and an ordered list of interns paid out of the
// developer's share. Both are pure functions: the same input always yields the
// same Result, and nothing here touches storage, transport or package state.
//
// Inputs are expected to be validated by the caller (see internal/validation).
// A non-positive payment or conversion rate is not rejected here.
package distribution

import "strings"

// RoleAssignment names the people holding each role on a job.
// JobHunter and Communicator may be blank, meaning the working developer
// covered that role as well.
type RoleAssignment struct {
	WorkingDev   string
	JobHunter    string
	Communicator string
}

// Distinctness records which optional roles are held by someone other than the
// working developer. It is computed once per calculation and every branch in
// both engines reads from it.
type Distinctness struct {
	JobHunter    bool
	Communicator bool
}

// Distinctness compares the optional roles against the working developer.
// Names are trimmed and then compared exactly; case is significant.
func (r RoleAssignment) Distinctness() Distinctness {
	dev := strings.TrimSpace(r.WorkingDev)
	return Distinctness{
		JobHunter:    isDistinct(r.JobHunter, dev),
		Communicator: isDistinct(r.Communicator, dev),
	}
}

// SamePerson reports whether the working developer holds every role.
func (d Distinctness) SamePerson() bool {
	return !d.JobHunter && !d.Communicator
}

// Normalize trims every name and fills blank optional roles with the working
// developer's name, which is how jobs are stored.
func (r RoleAssignment) Normalize() RoleAssignment {
	out := RoleAssignment{
		WorkingDev:   strings.TrimSpace(r.WorkingDev),
		JobHunter:    strings.TrimSpace(r.JobHunter),
		Communicator: strings.TrimSpace(r.Communicator),
	}
	if out.JobHunter == "" {
		out.JobHunter = out.WorkingDev
	}
	if out.Communicator == "" {
		out.Communicator = out.WorkingDev
	}
	return out
}

func isDistinct(name, dev string) bool {
	name = strings.TrimSpace(name)
	return name != "" && name != dev
}
