// Package main is the routeguard command.
//
// routeguard start serves a web front end in front of an external auth API.
// Its route guard middleware redirects visitors without a token cookie away
// from the protected pages and logged in visitors away from the home page and
// the login and registration pages. The pages register, log in, show the
// current user and log out through the auth API client.
//
// register, login, logout and whoami run the same client from the shell and
// keep the token in a cookie file.
package main
