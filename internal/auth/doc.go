// Package auth provides authentication for Skylark Core.
//
// It implements single-owner account identity with:
//   - bcrypt password hashing (cost 10)
//   - stateless HS256 JWT session tokens (7-day default expiry)
//   - a registration/login orchestrator with uniform failure behaviour
//
// Login failures are deliberately indistinguishable: unknown usernames
// and wrong passwords return the same error, and the unknown-user path
// still pays the bcrypt cost. Tokens carry the user ID as subject and
// are validated by signature and expiry alone — there is no revocation
// list and no refresh flow.
package auth
