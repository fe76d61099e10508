package config

import "errors"

var (
	// ErrInvalidLimit indicates a limit field is out of range.
	ErrInvalidLimit = errors.New("config: invalid limit")

	// ErrInvalidRate indicates the unit-conversion rate is not positive.
	ErrInvalidRate = errors.New("config: conversion rate must be positive")

	// ErrInvalidTiers indicates the tier table fails validation.
	ErrInvalidTiers = errors.New("config: invalid tier table")

	// ErrInvalidSettings indicates the payout settings fail validation.
	ErrInvalidSettings = errors.New("config: invalid payout settings")
)
