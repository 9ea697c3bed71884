package pgn_test

const threeSeatHand = `PREHAND
Big Blind: 2
Small Blind: 1
Player Chips: 500,495,507
Player Cards: [Ah Kd], [7c 2d], [Qs Js]

PREFLOP
New Cards: []
1. (0,RAISE,6);(1,CALL);(2,FOLD)

FLOP
New Cards: [Qd 3s Kd]
1. (1,CHECK);(0,RAISE,10);(1,CALL)

SETTLE
New Cards: []
Winners: (Pot 0,33,-1,[0])
`

const foldedPreflop = `PREHAND
Big Blind: 2
Small Blind: 1
Player Chips: 100,100

PREFLOP
New Cards: []
1. (0,FOLD)

SETTLE
New Cards: []
Winners: (Pot 0,3,-1,[1])
`
