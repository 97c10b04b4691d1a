// Command sisgate runs the local bridge between an application shell
// and the university student portal: it performs the CAS login,
// keeps the one authenticated session, and serves the portal's
// student endpoints over a loopback HTTP surface.
package main
