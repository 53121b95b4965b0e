package parsec

var RespondWithRand = respond
