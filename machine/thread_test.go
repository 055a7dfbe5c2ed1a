/*
 * gtu312 thread lifecycle test cases.
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in
 * all copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

package machine

import "testing"

func TestStatePrecedenceTerminatedBeatsEverything(t *testing.T) {
	b := NewBookkeeping(4)
	b.BlockedUntil[1] = TermSentinel
	b.CurrentThreadID = 1
	if got := b.State(1, ModeUser, 10, 50); got != StateTerminated {
		t.Fatalf("got %s, want TERM", got)
	}
}

func TestStatePrecedenceBlockedBeatsRunning(t *testing.T) {
	b := NewBookkeeping(4)
	b.BlockedUntil[1] = 200
	b.CurrentThreadID = 1
	if got := b.State(1, ModeUser, 100, 50); got != StateBlocked {
		t.Fatalf("got %s, want BLCK", got)
	}
}

func TestStateRunningWhenCurrentInUserMode(t *testing.T) {
	b := NewBookkeeping(4)
	b.CurrentThreadID = 2
	if got := b.State(2, ModeUser, 10, 50); got != StateRunning {
		t.Fatalf("got %s, want RUN", got)
	}
}

func TestStateReadyForPreseededThreadWithSavedPC(t *testing.T) {
	b := NewBookkeeping(4)
	b.CurrentThreadID = 1
	if got := b.State(3, ModeUser, 10, 400); got != StateReady {
		t.Fatalf("got %s, want RDY", got)
	}
}

func TestStateInactiveForUnstartedHighThread(t *testing.T) {
	b := NewBookkeeping(10)
	b.CurrentThreadID = 1
	if got := b.State(7, ModeUser, 10, 0); got != StateInactive {
		t.Fatalf("got %s, want INACT", got)
	}
}

func TestUnblockDueRemovesAndReportsAtDeadline(t *testing.T) {
	b := NewBookkeeping(4)
	b.BlockedUntil[1] = 50
	b.BlockedUntil[2] = 60

	due := b.UnblockDue(50)
	if len(due) != 1 || due[0] != 1 {
		t.Fatalf("got %v, want [1]", due)
	}
	if _, stillBlocked := b.BlockedUntil[1]; stillBlocked {
		t.Fatal("thread 1 should have been removed from BlockedUntil")
	}
	if _, stillBlocked := b.BlockedUntil[2]; !stillBlocked {
		t.Fatal("thread 2 should still be blocked")
	}
}

func TestUnblockDueNeverTouchesTerminated(t *testing.T) {
	b := NewBookkeeping(4)
	b.BlockedUntil[1] = TermSentinel
	due := b.UnblockDue(999999)
	if len(due) != 0 {
		t.Fatalf("got %v, want none (terminated threads never unblock)", due)
	}
}

func TestActiveCountCountsTerminatingThreadUntilMarked(t *testing.T) {
	b := NewBookkeeping(4)
	// Threads 2-4 already terminated; thread 1 is about to terminate but
	// has not yet recorded its own sentinel.
	b.BlockedUntil[2] = TermSentinel
	b.BlockedUntil[3] = TermSentinel
	b.BlockedUntil[4] = TermSentinel
	if got := b.ActiveCount(); got != 1 {
		t.Fatalf("got %d, want 1 (thread 1 still counts before it marks itself)", got)
	}
	b.BlockedUntil[1] = TermSentinel
	if got := b.ActiveCount(); got != 0 {
		t.Fatalf("got %d, want 0 once thread 1 records its own termination", got)
	}
}
