/*
 * MIT License
 *
 * Copyright (c) 2020 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

package app

import (
	"fmt"
	"runtime"
	"time"

	goversion "github.com/hashicorp/go-version"
)

// Descriptor is the build/version metadata an Application surfaces through
// its lifecycle's status info (spec.md §4.10's Open Question-free
// supplement; grounded on nabbar-golib/version.Version, trimmed to the
// fields a host application actually needs at runtime: a semantic
// release, a build id and a release date).
type Descriptor struct {
	Package     string
	Description string
	Release     string
	Build       string
	Date        time.Time
}

// NewDescriptor builds a Descriptor. release is stored as given;
// IsAtLeast parses it with hashicorp/go-version on each call.
func NewDescriptor(pkg, description, release, build string, date time.Time) Descriptor {
	return Descriptor{
		Package:     pkg,
		Description: description,
		Release:     release,
		Build:       build,
		Date:        date,
	}
}

// String renders "pkg vX.Y.Z (build, 2024-01-02)".
func (d Descriptor) String() string {
	return fmt.Sprintf("%s v%s (%s, %s)", d.Package, d.Release, d.Build, d.Date.Format("2006-01-02"))
}

// IsAtLeast reports whether d.Release is greater than or equal to other,
// using hashicorp/go-version's semver-aware comparison (so "v1.10.0" is
// correctly ordered after "v1.9.0", unlike a naive string compare).
func (d Descriptor) IsAtLeast(other string) (bool, error) {
	have, err := goversion.NewVersion(d.Release)
	if err != nil {
		return false, err
	}

	want, err := goversion.NewVersion(other)
	if err != nil {
		return false, err
	}

	return have.GreaterThanOrEqual(want), nil
}

// CheckGo reports whether the running Go toolchain satisfies constraint
// (e.g. ">= 1.21, < 2.0"), grounded on nabbar-golib/version's CheckGo
// method which does the same comparison against runtime.Version().
func CheckGo(constraint string) (bool, error) {
	c, err := goversion.NewConstraint(constraint)
	if err != nil {
		return false, err
	}

	goVer, err := goversion.NewVersion(runtimeGoVersion())
	if err != nil {
		return false, err
	}

	return c.Check(goVer), nil
}

// runtimeGoVersion strips the "go" prefix off runtime.Version() (e.g.
// "go1.22.3" -> "1.22.3") so it parses as a plain semver string.
func runtimeGoVersion() string {
	v := runtime.Version()
	if len(v) > 2 && v[:2] == "go" {
		return v[2:]
	}
	return v
}
