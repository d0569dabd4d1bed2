// Package webfront is the server-rendered front for the Nova Coders
// community site. It talks to the community REST backend, keeps per-visitor
// session state, and exposes the controllers and middleware the HTTP layer
// is wired from.
//
// Session model:
//   - Every browser gets a SessionStore keyed by its session cookie. The
//     store tracks the current user, auth token, loading flag, and last
//     error, and persists the durable parts through a Storage backend
//     (bbolt in production, memory in tests).
//   - Mutations are generation counted. An in-flight backend call records
//     the generation it started under and its result is dropped if the
//     session was cleared or replaced in the meantime, so a slow profile
//     fetch can never resurrect a logged-out session.
//
// Authentication:
//   - Auther performs sign in, sign up, sign out, and profile revalidation
//     against the backend and applies the results to a SessionStore. Role
//     and admin flags come exclusively from the backend payload.
//   - middleware/guard protects route groups. It rejects visitors without a
//     stored credential before any network call, optionally revalidates the
//     token, and enforces role requirements with a distinct denied path so
//     a signed-in non-admin is not bounced to the sign-in form.
//
// Status moderation:
//   - StatusMachine encodes the legal transitions for member applications,
//     contact requests, and inbox messages. The admin package guards every
//     transition locally before the PATCH reaches the backend.
package webfront
