// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides token generation for voter and owner credentials.

# Voter and Owner Tokens

Tokens are random 24-byte (192-bit) secrets:

	id, err := auth.GenerateVoterID()
	ids, err := auth.GenerateVoterIDs(5)

Possession of a token is the only credential in the system: a voter id
grants voting on one poll, the owner id grants administration. Tokens are
URL-safe base64 encoded and are independent of the voter's email address,
so the store operator cannot link a ballot to an identity from the token
alone.

# IP Hashing

For duplicate detection on public polls without storing raw addresses:

	hash := auth.HashIP(ipAddress, salt)

Returns the first 8 bytes (16 hex chars) of HMAC-SHA256.
*/
package auth
