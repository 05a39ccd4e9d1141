/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package labs

import "github.com/humaidq/medimind/logging"

var logger = logging.Logger(logging.SourceLabs)
