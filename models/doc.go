// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

JSON field names are camelCase to match the browser client.

# Request Types

  - CreatePollRequest: question, options[{text, isCorrect}], duration (seconds)
  - SubmitVoteRequest: pollId, studentName, optionId

# Domain Types

  - Poll: question, ordered options, duration, status, timestamps
  - Option: answer choice with derived vote count
  - Vote: one student's choice for one poll
  - ChatMessage: relayed chat line with a server timestamp

# Expiry

A poll's countdown is computed from CreatedAt + Duration:

	if poll.Expired(time.Now()) { ... }

Expiry is display-only. The server keeps accepting votes for an expired
poll until a newer poll closes it.

# Constants

Status values:

	StatusOpen   = "OPEN"
	StatusClosed = "CLOSED"

Error codes (ErrorResponse.Code):

	CodeValidation, CodeAlreadyVoted, CodePollNotActive, CodeInvalidOption
*/
package models
