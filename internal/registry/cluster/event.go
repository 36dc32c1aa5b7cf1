// Copyright (C) 2026 Trackside Simtelemetry Project.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.
package cluster

import "encoding/json"

func marshalEvent(ev MembershipEvent) ([]byte, error) {
	return json.Marshal(ev)
}

func unmarshalEvent(data []byte) (MembershipEvent, error) {
	var ev MembershipEvent
	if err := json.Unmarshal(data, &ev); err != nil {
		return MembershipEvent{}, err
	}
	return ev, nil
}
